package mimewalk

// parseState is the per-level traversal state described in the data
// model: the mime kind and boundary of the level currently being
// descended, whether it (or an ancestor) is inside a multipart/alternative
// block, a part counter, body-list-length snapshots taken at entry to this
// level, and which body flavors this level still needs filled.
type parseState struct {
	mimeKind      MimeKind
	mimeBoundary  []byte
	inAlternative bool
	parts         int
	htmlParts     int
	textParts     int
	needHTMLBody  bool
	needTextBody  bool
}

// rootState is the ParseState a parse begins with: the outermost level is
// itself treated as a Message.
func rootState() parseState {
	return parseState{
		mimeKind:     MimeMessage,
		needHTMLBody: true,
		needTextBody: true,
	}
}
