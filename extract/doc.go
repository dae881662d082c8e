/*
Package extract drives the parse of every file of a dump: it pumps token
events from each file into a fresh dump.Document, hands the document to
a Processor after every event so closed pages are drained as soon as
they complete, and applies the run's error Policy.
*/
package extract
