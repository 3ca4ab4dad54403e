package steno_lexer

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/wbrown/steno_lexer/types"
)

// Nodes with more children than this look them up through the map instead
// of scanning the precedence array.
const keyNodeArrMax = 10

type keyEntry struct {
	letters string
	rule    *types.Rule
	seq     int
}

type KeyNode struct {
	key       types.Key              // The key this node represents.
	keys      types.Keys             // The prior keys that led to this node.
	entries   []keyEntry             // Rules whose keys end at this node.
	childs    map[types.Key]*KeyNode // The child nodes.
	childsArr *[]*KeyNode            // The child nodes in an array, for precedence
}

// KeyTree is a prefix tree over steno keys. Keys in the unordered set may
// appear anywhere in a query without breaking the positional match of the
// remaining keys.
type KeyTree struct {
	root      *KeyNode
	unordered mapset.Set
	size      int
}

func newKeyNode(key types.Key, keys types.Keys) *KeyNode {
	children := make([]*KeyNode, 0)
	return &KeyNode{
		key:       key,
		keys:      keys,
		childs:    make(map[types.Key]*KeyNode, 0),
		childsArr: &children,
	}
}

// NewKeyTree
// Returns an empty tree. With no unordered keys given, the star key is
// unordered.
func NewKeyTree(unordered ...types.Key) *KeyTree {
	if len(unordered) == 0 {
		unordered = []types.Key{types.Star}
	}
	set := mapset.NewThreadUnsafeSet()
	for _, k := range unordered {
		set.Add(k)
	}
	return &KeyTree{
		root:      newKeyNode(0, types.Keys{}),
		unordered: set,
	}
}

// IsUnordered reports whether k may be skipped during a prefix match.
func (tree *KeyTree) IsUnordered(k types.Key) bool {
	return tree.unordered.Contains(k)
}

// Len returns the number of stored entries.
func (tree *KeyTree) Len() int {
	return tree.size
}

func (node *KeyNode) child(k types.Key) *KeyNode {
	if node.childsArr != nil {
		for _, child := range *node.childsArr {
			if child.key == k {
				return child
			}
		}
		return nil
	}
	return node.childs[k]
}

// AddEntry
// Stores rule under the literal key path of keys, tagged with letters.
func (tree *KeyTree) AddEntry(keys types.Keys, letters string,
	rule *types.Rule) {
	node := tree.root
	for i, k := range keys {
		childNode, ok := node.childs[k]
		if !ok {
			childNode = newKeyNode(k, keys[:i+1:i+1])
			node.childs[k] = childNode
			if len(node.childs) > keyNodeArrMax {
				// Too wide for a linear scan, use the map.
				node.childsArr = nil
			} else {
				if node.childsArr == nil {
					children := make([]*KeyNode, 0)
					node.childsArr = &children
				}
				*node.childsArr = append(*node.childsArr, childNode)
			}
		}
		node = childNode
	}
	node.entries = append(node.entries, keyEntry{letters, rule, tree.size})
	tree.size++
}

type keyCandidate struct {
	depth int
	entry keyEntry
}

func (tree *KeyTree) walk(node *KeyNode, keys types.Keys, letters string,
	collect bool, out *[]keyCandidate) {
	if collect {
		for _, entry := range node.entries {
			if strings.HasPrefix(letters, entry.letters) {
				*out = append(*out, keyCandidate{len(node.keys), entry})
			}
		}
	}
	if len(keys) == 0 {
		return
	}
	k := keys[0]
	if child := node.child(k); child != nil {
		tree.walk(child, keys[1:], letters, true, out)
	}
	if tree.unordered.Contains(k) {
		// Retry the same node with the unordered key passed over.
		tree.walk(node, keys[1:], letters, false, out)
	}
}

// PrefixMatch
// Returns every stored rule whose key path is a prefix of keys (unordered
// keys in the query may be passed over) and whose letters are a prefix of
// letters. Longer key prefixes come first, then longer letters, then
// insertion order.
func (tree *KeyTree) PrefixMatch(keys types.Keys, letters string) []*types.Rule {
	candidates := make([]keyCandidate, 0, 8)
	tree.walk(tree.root, keys, letters, true, &candidates)
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.depth != b.depth {
			return a.depth > b.depth
		}
		if len(a.entry.letters) != len(b.entry.letters) {
			return len(a.entry.letters) > len(b.entry.letters)
		}
		return a.entry.seq < b.entry.seq
	})
	rules := make([]*types.Rule, 0, len(candidates))
	for i, c := range candidates {
		if i > 0 && c.entry.seq == candidates[i-1].entry.seq {
			continue
		}
		rules = append(rules, c.entry.rule)
	}
	return rules
}

func (node *KeyNode) sortedChilds() []*KeyNode {
	childs := make([]*KeyNode, 0, len(node.childs))
	for _, child := range node.childs {
		childs = append(childs, child)
	}
	sort.Slice(childs, func(i, j int) bool {
		return childs[i].key < childs[j].key
	})
	return childs
}

// Represent the tree as a string by traversing the tree, and using tree
// characters to represent the tree structure.
func (node *KeyNode) string(level int) string {
	if node == nil {
		return ""
	}
	s := ""
	if node.key != 0 {
		s = string(rune(node.key))
	}
	if len(node.entries) > 0 {
		s += "["
		for i, entry := range node.entries {
			if i > 0 {
				s += ","
			}
			s += entry.rule.Name
		}
		s += "]"
	}
	childs := node.sortedChilds()
	if len(childs) == 1 && len(node.entries) == 0 {
		return s + childs[0].string(level)
	}
	level += 1
	s += "\n"
	for idx, child := range childs {
		childPrefix := strings.Repeat("| ", level-1)
		// If we're the last child, then we prepend with a tree terminator.
		if idx == len(childs)-1 {
			childPrefix += "└─"
		} else {
			childPrefix += "├─"
		}
		s += childPrefix + child.string(level)
	}
	return s
}

// Wrapper
func (node *KeyNode) String() string {
	return node.string(0)
}

func (tree *KeyTree) String() string {
	return tree.root.String()
}
