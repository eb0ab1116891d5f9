package stego

import "fmt"

// lsbPlane exposes the low bit of each byte as a bit sequence.
type lsbPlane []byte

func (p lsbPlane) Len() int        { return len(p) }
func (p lsbPlane) Bit(i int) uint8 { return LowBit(p[i]) }

// bitPlane stores one frame bit in the least significant bit of each byte of
// the payload region, starting at the offset its locator reports.
type bitPlane struct {
	format Format
	locate func([]byte) (region, error)
}

func newBMPEmbedder() *bitPlane { return &bitPlane{format: FormatBMP, locate: locateBMP} }

func newPPMEmbedder() *bitPlane { return &bitPlane{format: FormatPPM, locate: locatePPM} }

func (e *bitPlane) Format() Format { return e.format }

func (e *bitPlane) Dimensions(buf []byte) (Dimensions, error) {
	r, err := e.locate(buf)
	if err != nil {
		return Dimensions{}, err
	}
	return r.Dims, nil
}

func (e *bitPlane) Capacity(buf []byte) (int64, error) {
	r, err := e.locate(buf)
	if err != nil {
		return 0, err
	}
	c := r.capacity(len(buf)) - lengthPrefixBits
	if c < 0 {
		return 0, nil
	}
	return c, nil
}

func (e *bitPlane) CanEmbed(buf, msg []byte) (bool, error) {
	r, err := e.locate(buf)
	if err != nil {
		return false, err
	}
	return r.capacity(len(buf)) >= frameBits(len(msg)), nil
}

func (e *bitPlane) Embed(buf, msg, key []byte) ([]byte, error) {
	r, err := e.locate(buf)
	if err != nil {
		return nil, err
	}
	need, avail := frameBits(len(msg)), r.capacity(len(buf))
	if need > avail {
		return nil, fmt.Errorf("%w: %s frame needs %d bits, %d available", ErrCapacity, e.format, need, avail)
	}
	frame, err := BuildFrame(msg, key)
	if err != nil {
		return nil, err
	}
	payload := buf[r.Offset:]
	for i, bit := range frame {
		payload[i] = SetLowBit(payload[i], bit)
	}
	return buf, nil
}

func (e *bitPlane) Extract(buf, key []byte) (Bits, error) {
	r, err := e.locate(buf)
	if err != nil {
		return nil, err
	}
	return readFrame(lsbPlane(buf[r.Offset:]), key)
}

func (e *bitPlane) Verify(buf []byte) error {
	_, err := e.Extract(buf, nil)
	return err
}
