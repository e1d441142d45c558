package mcpserver

// OutlineFormatContract describes the canonical vocabulary outline that
// the exporter harvests. LLM consumers writing outlines by hand should
// follow it exactly.
const OutlineFormatContract = `# Laguz Vocabulary Outline Contract

A vocabulary block is an outline: one context line at the top, then one
word entry subtree per marked term.

## Structure

` + "```" + `
- The hotel was ^^unpretentious^^ and friendly.
	- ^^unpretentious^^ ` + "`" + `ˌʌnprɪˈtenʃəs` + "`" + ` ` + "`" + `adjective` + "`" + ` ` + "`" + `translation` + "`" + ` #new-words
		- **Definition**: not trying to impress others with wealth or importance
		- **Examples**
			- 1. The hotel was small and unpretentious.
			- 2. He remained unpretentious despite his fame.
		- **Synonyms**
			- modest ` + "`" + `ˈmɒdɪst` + "`" + ` ` + "`" + `adjective` + "`" + ` ` + "`" + `translation` + "`" + `
		- **Antonyms**
			- pretentious ` + "`" + `prɪˈtenʃəs` + "`" + ` ` + "`" + `adjective` + "`" + ` ` + "`" + `translation` + "`" + `
		- **Etymology**: from un- + pretentious, 19th century.
		- **Usage Notes**: usually approving; compare "modest".
` + "```" + `

## Rules

1. **Marked terms** use ` + "`" + `^^term^^` + "`" + ` or a trailing speaker glyph after one
   space. The context line must contain every term the entries cover.
2. **Entry headline**: the marked term, then phonetic, part of speech,
   and translation, each wrapped in single backticks. Empty values keep
   an empty backtick pair so the token positions never shift. Tags come
   last as ` + "`" + `#tag` + "`" + ` tokens.
3. **Part of speech** must be one of noun, verb, adjective, adverb, adj
   for the entry line to be recognized; anything else (e.g. "phrase")
   relies on fuzzy matching of the marked term.
4. **Definition** is a single child line starting with ` + "`" + `**Definition**:` + "`" + `.
   For multi-word phrases it may wrap onto up to 4 plain continuation
   lines.
5. **Examples** sit under a ` + "`" + `**Examples**` + "`" + ` header, one numbered child
   line each.
6. **Synonyms/Antonyms** headers hold one related word per child line in
   headline format (without ^^ marks).
7. **Etymology** and **Usage Notes** lines are optional and omitted when
   empty.
8. **Indentation** is one tab per nesting level; every line starts with
   ` + "`" + `- ` + "`" + ` when rendered as text.
`
