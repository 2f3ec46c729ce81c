package lib

import "github.com/gingerrexayers/fdf-go/internal/fdf/types"

// EntryID is a handle to a node in a ContentIndex.
type EntryID int32

// NoEntry marks an absent link.
const NoEntry EntryID = -1

// IndexedFile is one node of the index arena. Tree nodes hold the first path
// seen with their digest; later paths with the same digest are chain members
// hanging off that node.
type IndexedFile struct {
	Path   string
	Digest types.Digest

	left, right EntryID
	parent      EntryID // back-reference only

	next, prev EntryID
	tail       EntryID // last chain member; kept on chain heads only
}

// Entry is a read-only view of an indexed file.
type Entry struct {
	ID     EntryID
	Path   string
	Digest types.Digest
}

// ContentIndex is an unbalanced binary search tree keyed by digest, with an
// overflow chain per node for files whose digest is already present.
// It is not safe for concurrent mutation.
type ContentIndex struct {
	nodes []IndexedFile
	root  EntryID
	size  int
}

// NewContentIndex returns an empty index.
func NewContentIndex() *ContentIndex {
	return &ContentIndex{root: NoEntry}
}

// InsertIfAbsent adds path under digest unless the digest is already present.
// It returns the new entry and true, or the original entry for the digest
// and false. In the second case path joins the original's chain.
func (ix *ContentIndex) InsertIfAbsent(path string, digest types.Digest) (Entry, bool) {
	if ix.root == NoEntry {
		ix.root = ix.alloc(path, digest, NoEntry)
		ix.size++
		return ix.entry(ix.root), true
	}

	current := ix.root
	for {
		node := &ix.nodes[current]
		cmp := digest.Compare(node.Digest)
		switch {
		case cmp < 0:
			if node.left == NoEntry {
				id := ix.alloc(path, digest, current)
				ix.nodes[current].left = id
				ix.size++
				return ix.entry(id), true
			}
			current = node.left
		case cmp > 0:
			if node.right == NoEntry {
				id := ix.alloc(path, digest, current)
				ix.nodes[current].right = id
				ix.size++
				return ix.entry(id), true
			}
			current = node.right
		default:
			ix.appendChain(current, path)
			return ix.entry(ix.chainHead(current)), false
		}
	}
}

// Find returns the original entry for digest, if any.
func (ix *ContentIndex) Find(digest types.Digest) (Entry, bool) {
	current := ix.root
	for current != NoEntry {
		node := &ix.nodes[current]
		cmp := digest.Compare(node.Digest)
		switch {
		case cmp < 0:
			current = node.left
		case cmp > 0:
			current = node.right
		default:
			return ix.entry(ix.chainHead(current)), true
		}
	}
	return Entry{ID: NoEntry}, false
}

// Duplicates lists the paths chained behind the original id, in insertion order.
func (ix *ContentIndex) Duplicates(id EntryID) []string {
	if id < 0 || int(id) >= len(ix.nodes) {
		return nil
	}
	var paths []string
	for member := ix.nodes[ix.chainHead(id)].next; member != NoEntry; member = ix.nodes[member].next {
		paths = append(paths, ix.nodes[member].Path)
	}
	return paths
}

// Walk visits every original in ascending digest order until fn returns false.
func (ix *ContentIndex) Walk(fn func(Entry) bool) {
	var stack []EntryID
	current := ix.root
	for current != NoEntry || len(stack) > 0 {
		for current != NoEntry {
			stack = append(stack, current)
			current = ix.nodes[current].left
		}
		current = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(ix.entry(current)) {
			return
		}
		current = ix.nodes[current].right
	}
}

// Len returns the number of distinct digests.
func (ix *ContentIndex) Len() int { return ix.size }

// Files returns the number of indexed paths, chain members included.
func (ix *ContentIndex) Files() int { return len(ix.nodes) }

// Reset drops every node. Nodes live in one arena, so there is no per-node
// teardown and no recursion depth to worry about.
func (ix *ContentIndex) Reset() {
	clear(ix.nodes)
	ix.nodes = ix.nodes[:0]
	ix.root = NoEntry
	ix.size = 0
}

func (ix *ContentIndex) alloc(path string, digest types.Digest, parent EntryID) EntryID {
	id := EntryID(len(ix.nodes))
	ix.nodes = append(ix.nodes, IndexedFile{
		Path:   path,
		Digest: append(types.Digest(nil), digest...),
		left:   NoEntry,
		right:  NoEntry,
		parent: parent,
		next:   NoEntry,
		prev:   NoEntry,
		tail:   NoEntry,
	})
	return id
}

func (ix *ContentIndex) appendChain(head EntryID, path string) {
	id := ix.alloc(path, ix.nodes[head].Digest, NoEntry)
	last := ix.nodes[head].tail
	if last == NoEntry {
		last = head
	}
	ix.nodes[last].next = id
	ix.nodes[id].prev = last
	ix.nodes[head].tail = id
}

// chainHead walks prev links back to the first file inserted for a digest.
func (ix *ContentIndex) chainHead(id EntryID) EntryID {
	for ix.nodes[id].prev != NoEntry {
		id = ix.nodes[id].prev
	}
	return id
}

func (ix *ContentIndex) entry(id EntryID) Entry {
	node := &ix.nodes[id]
	return Entry{ID: id, Path: node.Path, Digest: node.Digest}
}
