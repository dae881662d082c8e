/*
Package dump holds the records of a MediaWiki XML export and the
Document root which builds them from token events.

A Document is fed one event at a time with HandleEvent. Pages are
appended as their start tags arrive and marked Closed at their end tag,
at which point a consumer may remove them with PopPage or Drain. Only
pages not yet drained are held in memory, so exports of any size can be
processed as long as the consumer keeps up.

The first start tag of the stream must be the <mediawiki> root carrying
an export namespace (http://www.mediawiki.org/xml/export-<version>/).
If it is not, the Document fails with an InvalidFormat error and rejects
every later event.

By default any error leaves the Document in an undefined state and the
caller is expected to abandon the input. WithRecovery makes errors
raised inside a page drop that page only: the error is reported to the
recovery function and the rest of the page is skipped.
*/
package dump
