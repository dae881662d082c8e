package extract

import (
	"fmt"
)

// Policy is what a Runner does when parsing a file fails
type Policy int

const (
	// AbortFile abandons the failing file and continues with the next
	AbortFile Policy = iota
	// SkipPage drops pages which fail to parse and continues with the rest
	// of the file. Errors outside pages still abort the file.
	SkipPage
	// StopRun ends the run at the first failing file
	StopRun
)

var policyNames = [...]string{
	AbortFile: "abort-file",
	SkipPage:  "skip-page",
	StopRun:   "stop",
}

func (p Policy) String() string {
	if p >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Set implements pflag.Value
func (p *Policy) Set(s string) error {
	for i, name := range policyNames {
		if s == name {
			*p = Policy(i)
			return nil
		}
	}
	return fmt.Errorf("unknown policy %q (want abort-file, skip-page or stop)", s)
}

// Type implements pflag.Value
func (p *Policy) Type() string { return "policy" }
