package senml

// IssueAt creates an Issue for code at the given path, with a localized message.
// data carries optional message parameters for the translator.
func IssueAt(p PathRef, code string, data map[string]string) Issue {
	return newIssue(code, p.Pointer(), p.RecordIndex(), data)
}
