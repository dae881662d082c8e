/*
Package token turns an XML byte stream into the flat sequence of events
the dump state machine consumes.

The Source does no namespace resolution and no start/end tag matching;
names are reported as written (prefix:local) and nesting is validated by
whatever consumes the events. Self-closing elements are reported as a
single EmptyTag event rather than a start/end pair, since some dump
elements (<redirect/>) are only meaningful in that form.
*/
package token
