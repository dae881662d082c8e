/*
Package tag implements the lifecycle shared by every node of the dump
document tree, and the generic containers records are assembled from.

Each node moves through Unopened, Open and Closed, in that order. A
node is opened by its start tag, receives events while Open, and is
closed by its matching end tag. A self-closing tag opens and closes a
node in one step. Events delivered to a node which is not Open fail with
a parseerr BadState error; events no rule accounts for fail with
UnhandledEvent, so unknown elements surface instead of being dropped.

Opening a node discards everything it held before. Containers reuse the
same node value for a slot, so this is how a slot is replaced with a
fresh instance when its tag occurs again.

Events are delivered depth first: a container hands each event to its
one open child, if any, and only interprets it itself otherwise. At most
one path from the root is open at a time.
*/
package tag
