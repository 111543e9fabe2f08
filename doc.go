// Package huffpack implements a lossless byte-oriented compressor based on
// Huffman codes.
//
// Compression counts the occurrences of each byte, builds an optimal prefix
// code tree by repeatedly merging the two lightest nodes, derives a code for
// each byte, packs the codes MSB-first into a byte stream, and stores the
// code table alongside the payload in a self-describing Container.
// Decompression reverses the process exactly.
//
// Container layout (all integers little-endian):
//
//     "HUF" version:u8 originalLength:u64 alphabetSize:u64
//     alphabetSize × ( symbol:u8 codeBitLength:u64 codeBits:ceil(len/8) bytes )
//     leftoverBitCount:u8 payload...
//
// leftoverBitCount is the number of meaningful bits in the final payload
// byte, or 0 if the final byte is full.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffpack
