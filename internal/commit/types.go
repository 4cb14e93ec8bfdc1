package commit

// ShortHashLen is the number of hash characters kept on a parsed Commit.
const ShortHashLen = 7

// Record is one raw commit as read from git: the full hash, the subject line
// and the remaining message body (possibly empty).
type Record struct {
	Hash    string
	Subject string
	Body    string
}

// Commit is a conventional commit parsed from a Record.
// A Commit always has a Type; records without one are never represented.
type Commit struct {
	Hash     string   `yaml:"hash"`
	Type     string   `yaml:"type"`
	Scope    string   `yaml:"scope,omitempty"`
	Subject  string   `yaml:"subject"`
	Body     string   `yaml:"-"`
	Breaking bool     `yaml:"breaking"`
	PR       string   `yaml:"pr,omitempty"`
	Issues   []string `yaml:"issues,omitempty"`
}

// HasScope returns true if the commit subject carried a parenthesized scope.
func (c Commit) HasScope() bool {
	return c.Scope != ""
}

// HasPR returns true if a pull-request number was found in the subject.
func (c Commit) HasPR() bool {
	return c.PR != ""
}
