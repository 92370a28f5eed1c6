package webpcodec

import "github.com/five82/imgresize/internal/pixelbuf"

// kCodeLengthCodeOrder is the fixed transmission order of the 19-symbol
// code-length alphabet used to describe the code lengths of VP8L's data
// alphabets (green+length, red, blue, alpha, distance).
var kCodeLengthCodeOrder = [19]int{17, 18, 0, 1, 2, 3, 4, 5, 16, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// writeUniformCodeLengthGroup writes a VP8L Huffman code definition (the
// "normal" code-length-code path) in which every one of numSymbols data
// symbols is assigned an equal 8-bit code length, and the codeword for
// symbol s is simply s itself. This keeps encode/decode trivially
// consistent without backward-reference matches or a color cache; it is
// not a spec-exact minimal-redundancy code, so files this package writes
// favor correctness of structure over compression ratio (see DESIGN.md).
func writeUniformCodeLengthGroup(bw *bitWriter, numSymbols int) {
	bw.WriteBits(0, 1) // simple_code = 0: use the normal code-length-code path

	bw.WriteBits(19-4, 4) // num_code_lengths - 4: transmit all 19 entries
	for _, sym := range kCodeLengthCodeOrder {
		length := 0
		if sym == 8 {
			length = 1 // the only code-length value ever used: "8"
		}
		bw.WriteBits(uint32(length), 3)
	}

	bw.WriteBits(0, 1) // no explicit max_symbol limit

	// One data symbol's code length is transmitted per literal "8" token
	// using the degenerate single-symbol code-length code built above.
	for i := 0; i < numSymbols; i++ {
		bw.WriteBits(0, 1) // codeword for code-length symbol "8"
	}
}

// writeSimpleLengthCodeGroup writes a trivial one-symbol "simple code"
// Huffman group, used for the distance alphabet since no backward
// references are ever emitted.
func writeSimpleLengthCodeGroup(bw *bitWriter) {
	bw.WriteBits(1, 1) // simple_code = 1
	bw.WriteBits(0, 1) // num_symbols - 1 = 0: a single symbol
	bw.WriteBits(1, 1) // is_first_8bits = 1
	bw.WriteBits(0, 8) // the symbol itself (distance code 0, never used)
}

// writeSymbol writes the codeword for a data byte under the uniform
// 8-bit code built by writeUniformCodeLengthGroup: codeword(s) = s.
func writeSymbol(bw *bitWriter, value byte) {
	bw.WriteBits(uint32(value), 8)
}

// encodeVP8L assembles the VP8L chunk payload for buf: header, the five
// Huffman code groups, and one ARGB literal per pixel. No transform, no
// color cache, no backward references.
func encodeVP8L(buf *pixelbuf.Buffer) []byte {
	bw := &bitWriter{}

	alphaUsed := buf.Channels == 4

	bw.WriteBits(0x2F, 8) // VP8L signature
	bw.WriteBits(uint32(buf.Width-1), 14)
	bw.WriteBits(uint32(buf.Height-1), 14)
	if alphaUsed {
		bw.WriteBits(1, 1)
	} else {
		bw.WriteBits(0, 1)
	}
	bw.WriteBits(0, 3) // version

	bw.WriteBits(0, 1) // transforms: none
	bw.WriteBits(0, 1) // color cache: none
	bw.WriteBits(0, 1) // meta prefix (huffman image): none, single group

	writeUniformCodeLengthGroup(bw, 256) // green (+ length, unused above 255)
	writeUniformCodeLengthGroup(bw, 256) // red
	writeUniformCodeLengthGroup(bw, 256) // blue
	if alphaUsed {
		writeUniformCodeLengthGroup(bw, 256) // alpha
	}
	writeSimpleLengthCodeGroup(bw) // distance, never used

	for y := 0; y < buf.Height; y++ {
		row := buf.Row(y)
		for x := 0; x < buf.Width; x++ {
			i := x * buf.Channels
			r, g, b := row[i], row[i+1], row[i+2]
			if alphaUsed {
				writeSymbol(bw, row[i+3])
			}
			writeSymbol(bw, r)
			writeSymbol(bw, g)
			writeSymbol(bw, b)
		}
	}

	return bw.Flush()
}
