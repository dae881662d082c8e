/*
Package wikiextractor is a set of libraries for reading MediaWiki XML
dumps as a stream.

Doing the heavy lifting of tokenizing (token), tracking the open/closed
lifecycle of every element (tag) and assembling site information and
pages (dump), these libraries allow processing dumps far larger than
memory: each page is handed to the consumer as soon as its end tag is
read and then released.

Dumps are read from local files or from a dump mirror, bzip2 or gzip
compressed or not (input), and written out as redirect tables, page
metadata and plain article text (output). The extract package drives the
whole pipeline over every file of a dump and reports the outcome.

See cmd/wikiextract for the command line front end.
*/
package wikiextractor
