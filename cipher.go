package stego

// ApplyKeystream XORs data against the bits of key repeated cyclically.
//
// An empty key leaves data unchanged. The operation is its own inverse, and it
// offers obfuscation only: a wrong key yields wrong bytes, never an error.
func ApplyKeystream(data Bits, key []byte) Bits {
	if len(key) == 0 {
		return data
	}
	keyBits := BytesToBits(key)
	out := make(Bits, len(data))
	for i, v := range data {
		out[i] = (v ^ keyBits[i%len(keyBits)]) & 1
	}
	return out
}
