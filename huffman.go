package spcodec

import "sort"

// huffNode is a Huffman tree node: a leaf carries a byte symbol, an
// internal node only a combined frequency.
type huffNode struct {
	sym   byte
	leaf  bool
	freq  int
	left  *huffNode
	right *huffNode
}

// huffCode is one entry of the encoding table.
type huffCode struct {
	bits uint32
	n    int
}

// buildHuffTree builds the tree with the two-queue method: leaves
// enter one queue sorted by frequency, combinations enter the other in
// nondecreasing order, so the smallest pending node is always at one
// of the two heads and the build runs in linear time after the sort.
func buildHuffTree(freq *[256]int) (*huffNode, error) {
	var leaves []*huffNode
	for s := 0; s < 256; s++ {
		if freq[s] > 0 {
			leaves = append(leaves, &huffNode{sym: byte(s), leaf: true, freq: freq[s]})
		}
	}
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}
	if len(leaves) == 1 {
		return nil, ErrSingleSymbol
	}
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].freq != leaves[j].freq {
			return leaves[i].freq < leaves[j].freq
		}
		return leaves[i].sym < leaves[j].sym
	})

	var combos []*huffNode
	smallest := func() *huffNode {
		switch {
		case len(leaves) == 0:
			n := combos[0]
			combos = combos[1:]
			return n
		case len(combos) == 0:
			n := leaves[0]
			leaves = leaves[1:]
			return n
		case leaves[0].freq <= combos[0].freq:
			n := leaves[0]
			leaves = leaves[1:]
			return n
		default:
			n := combos[0]
			combos = combos[1:]
			return n
		}
	}
	for len(leaves)+len(combos) > 1 {
		a := smallest()
		b := smallest()
		combos = append(combos, &huffNode{freq: a.freq + b.freq, left: a, right: b})
	}
	return combos[0], nil
}

// buildHuffTable fills the per-symbol code table by DFS, 0 for left
// and 1 for right.
func buildHuffTable(node *huffNode, bits uint32, n int, table *[256]huffCode) {
	if node.leaf {
		table[node.sym] = huffCode{bits: bits, n: n}
		return
	}
	buildHuffTable(node.left, bits<<1, n+1, table)
	buildHuffTable(node.right, bits<<1|1, n+1, table)
}

// writeHuffTree serializes the tree shape by DFS: a 1 bit plus the
// 8-bit symbol for a leaf, a 0 bit for an internal node followed by
// its two subtrees.
func writeHuffTree(w *bitWriter, node *huffNode) {
	if node.leaf {
		w.WriteBit(1)
		w.WriteBits(uint32(node.sym), 8)
		return
	}
	w.WriteBit(0)
	writeHuffTree(w, node.left)
	writeHuffTree(w, node.right)
}

func readHuffTree(r *bitReader, depth int) (*huffNode, error) {
	// a valid tree over byte symbols never exceeds 256 levels
	if depth > 256 {
		return nil, ErrCorruptStream
	}
	bit, err := r.ReadBit()
	if err != nil {
		return nil, err
	}
	if bit == 1 {
		sym, err := r.ReadBits(8)
		if err != nil {
			return nil, err
		}
		return &huffNode{sym: byte(sym), leaf: true}, nil
	}
	left, err := readHuffTree(r, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := readHuffTree(r, depth+1)
	if err != nil {
		return nil, err
	}
	return &huffNode{left: left, right: right}, nil
}

// huffmanEncode compresses data into a self-describing stream: a
// 32-bit symbol count, the serialized tree, then the code bits.
// Returns ErrEmptyInput for empty data and ErrSingleSymbol when only
// one distinct byte occurs (its code would be zero bits wide).
func huffmanEncode(data []byte) ([]byte, error) {
	var freq [256]int
	for _, b := range data {
		freq[b]++
	}
	root, err := buildHuffTree(&freq)
	if err != nil {
		return nil, err
	}
	var table [256]huffCode
	buildHuffTable(root, 0, 0, &table)

	w := newBitWriter()
	w.WriteBits(uint32(len(data)), 32)
	writeHuffTree(w, root)
	for _, b := range data {
		c := table[b]
		w.WriteBits(c.bits, c.n)
	}
	return w.Flush(), nil
}

// huffmanDecode reverses huffmanEncode.
func huffmanDecode(data []byte) ([]byte, error) {
	r := newBitReader(data)
	count, err := r.ReadBits(32)
	if err != nil {
		return nil, err
	}
	root, err := readHuffTree(r, 0)
	if err != nil {
		return nil, err
	}
	if root.leaf {
		return nil, ErrCorruptStream
	}
	// Every symbol costs at least one payload bit.
	if int64(count) > int64(r.Remaining()+1)*8 {
		return nil, ErrTruncatedData
	}
	out := make([]byte, 0, count)
	for uint32(len(out)) < count {
		node := root
		for !node.leaf {
			bit, err := r.ReadBit()
			if err != nil {
				return nil, err
			}
			if bit == 0 {
				node = node.left
			} else {
				node = node.right
			}
		}
		out = append(out, node.sym)
	}
	return out, nil
}
