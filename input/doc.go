/*
Package input locates export dumps and opens them as byte streams.

A dump is either a local file or the set of article dump files a
Wikimedia mirror lists in the dumpstatus.json of a wiki/version
directory. Streams are decompressed according to the file extension
(.bz2 or .gz) and count the compressed bytes consumed so progress can
be measured against the sizes the mirror reports.
*/
package input
