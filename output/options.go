package output

// Options selects the files a Generator writes
type Options struct {
	// Redirects collects redirect pages into redirects.json
	Redirects bool
	// Metadata collects page metadata into wiki_page_info.json
	Metadata bool
	// Text collects the latest revision text into wiki_text.txt
	Text bool
	// Dictionary collects the words of the latest revision text into
	// dictionary.txt
	Dictionary bool
	// Select is an XPath expression pages must match to be written; empty
	// selects every page
	Select string
}

// Any reports whether any output is enabled
func (o Options) Any() bool { return o.Redirects || o.Metadata || o.Text || o.Dictionary }
