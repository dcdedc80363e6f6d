/*
Package joints classifies welded joint groups of shell elements.

A joint group is one connected component of elements labeled A, B, C and T. Both classifiers
anchor on the triplet center, the node where exactly one A, one B and one T element meet with no
C element present, then resolve reference nodes from the local topology:

	C-edge    a node of T shared only with one C element
	C-corner  a node of that C element owned by no other element of the group
	A-corner  a node of A, other than the center, owned by no other element of the group

Flags are the signs of dot products between unit directions from these nodes and element
normals, and a fixed table maps the flags to output roles. A group that cannot be resolved is
skipped with one of the sentinel errors; nothing is assigned for it.

Weld groups are classified separately: ClassifyWeldGroup compares the normal of the middle
element of an ordered weld chain with the two short elements found around its nodes.
*/
package joints
