package outline

// BlockWriter is the host block-tree write capability consumed by
// Materialize. order -1 means "append last".
type BlockWriter interface {
	CreateChildBlock(parentID, text string, order int, open bool) (string, error)
}

// Materialize walks the tree and issues one CreateChildBlock call per
// node, in document order, nesting children under the id returned for
// their parent. The container node itself is created under parentID and
// its id is returned.
func Materialize(w BlockWriter, parentID string, root *Node) (string, error) {
	id, err := w.CreateChildBlock(parentID, root.Text, -1, true)
	if err != nil {
		return "", err
	}
	for _, c := range root.Children {
		if _, err := Materialize(w, id, c); err != nil {
			return "", err
		}
	}
	return id, nil
}
