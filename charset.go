package vtengine

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/unicode/norm"
)

// Encoding selects the byte-stream decoding applied to Input (§4.2).
type Encoding int

const (
	EncodingASCII Encoding = iota
	EncodingUTF8
	EncodingSJIS
	EncodingEUC
	EncodingGBK
)

// DecodeStatus reports what Feed produced for one input byte.
type DecodeStatus int

const (
	// DecodePending means more bytes are needed before a codepoint is ready.
	DecodePending DecodeStatus = iota
	// DecodeRune means a full codepoint was decoded.
	DecodeRune
	// DecodeInvalid means the sequence was malformed: the returned rune is
	// U+FFFD and the decoder has reset, so the triggering byte must be fed
	// again to restart a fresh decode (§4.2, §7 DecodeInvalid).
	DecodeInvalid
)

const replacementChar = '�'

// CharsetDecoder turns a raw input byte stream into codepoints, one byte
// at a time, so the parser can interleave decoding with control-sequence
// recognition exactly as bytes arrive (§4.2).
type CharsetDecoder struct {
	encoding Encoding

	utf8Need  int
	utf8Val   rune
	utf8Min   rune
	sjisLead  byte
	dbcsLead  byte
	eucDec    *encoding.Decoder
	gbkDec    *encoding.Decoder
}

// NewCharsetDecoder creates a decoder for the given encoding.
func NewCharsetDecoder(enc Encoding) *CharsetDecoder {
	return &CharsetDecoder{encoding: enc}
}

// SetEncoding switches the active encoding and discards any pending lead bytes.
func (d *CharsetDecoder) SetEncoding(enc Encoding) {
	d.encoding = enc
	d.reset()
}

func (d *CharsetDecoder) reset() {
	d.utf8Need = 0
	d.utf8Val = 0
	d.utf8Min = 0
	d.sjisLead = 0
	d.dbcsLead = 0
}

// Feed decodes one input byte, returning the decoded rune (valid only when
// status is DecodeRune or DecodeInvalid) and the decode status.
func (d *CharsetDecoder) Feed(b byte) (rune, DecodeStatus) {
	switch d.encoding {
	case EncodingUTF8:
		return d.feedUTF8(b)
	case EncodingSJIS:
		return d.feedSJIS(b)
	case EncodingEUC:
		return d.feedDBCS(b, d.eucJPDecoder())
	case EncodingGBK:
		return d.feedDBCS(b, d.gbkDecoder())
	default:
		return rune(b), DecodeRune
	}
}

func (d *CharsetDecoder) eucJPDecoder() *encoding.Decoder {
	if d.eucDec == nil {
		d.eucDec = japanese.EUCJP.NewDecoder()
	}
	return d.eucDec
}

func (d *CharsetDecoder) gbkDecoder() *encoding.Decoder {
	if d.gbkDec == nil {
		d.gbkDec = simplifiedchinese.GBK.NewDecoder()
	}
	return d.gbkDec
}

// feedUTF8 is a classical incremental UTF-8 DFA: it accumulates
// continuation bytes and validates each one, rewinding (via the reset +
// DecodeInvalid contract) on a malformed sequence (§4.2 UTF-8, §7).
func (d *CharsetDecoder) feedUTF8(b byte) (rune, DecodeStatus) {
	if d.utf8Need == 0 {
		switch {
		case b < 0x80:
			return rune(b), DecodeRune
		case b&0xE0 == 0xC0:
			d.utf8Need = 1
			d.utf8Val = rune(b & 0x1F)
			d.utf8Min = 0x80
		case b&0xF0 == 0xE0:
			d.utf8Need = 2
			d.utf8Val = rune(b & 0x0F)
			d.utf8Min = 0x800
		case b&0xF8 == 0xF0:
			d.utf8Need = 3
			d.utf8Val = rune(b & 0x07)
			d.utf8Min = 0x10000
		default:
			d.reset()
			return replacementChar, DecodeInvalid
		}
		return 0, DecodePending
	}

	if b&0xC0 != 0x80 {
		d.reset()
		return replacementChar, DecodeInvalid
	}
	d.utf8Val = d.utf8Val<<6 | rune(b&0x3F)
	d.utf8Need--
	if d.utf8Need > 0 {
		return 0, DecodePending
	}
	v, minVal := d.utf8Val, d.utf8Min
	d.reset()
	if v < minVal || v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
		return replacementChar, DecodeInvalid
	}
	return v, DecodeRune
}

// feedSJIS implements the lead/trail byte arithmetic documented in §4.2,
// taken directly from the original engine's Shift-JIS handling: the two
// raw bytes are folded into an EUC-JP pair, then run through the
// ecosystem's EUC-JP decoder to get a Unicode codepoint.
func (d *CharsetDecoder) feedSJIS(b byte) (rune, DecodeStatus) {
	if d.sjisLead == 0 {
		if (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xEF) {
			d.sjisLead = b
			return 0, DecodePending
		}
		return rune(b), DecodeRune
	}

	lead := d.sjisLead
	trail := b
	d.sjisLead = 0

	var c, t int
	if lead <= 0x9F {
		c = (int(lead)-0x81)*2 + 0x21
	} else {
		c = (int(lead)-0xC1)*2 + 0x21
	}
	t = int(trail)
	switch {
	case t <= 0x7E:
		t -= 0x1F
	case t <= 0x9E:
		t -= 0x20
	default:
		t -= 0x7E
		c++
	}
	if t < 0x21 || t > 0x7E || c < 0x21 || c > 0x7E {
		return replacementChar, DecodeInvalid
	}
	eucBytes := []byte{byte(c | 0x80), byte(t | 0x80)}
	out := make([]byte, 8)
	n, _, err := d.eucJPDecoder().Transform(out, eucBytes, true)
	if err != nil || n == 0 {
		return replacementChar, DecodeInvalid
	}
	r := decodeFirstRune(out[:n])
	return r, DecodeRune
}

// feedDBCS buffers up to two bytes and decodes through an ecosystem
// transform.Decoder, used for EUC and GBK (§4.2).
func (d *CharsetDecoder) feedDBCS(b byte, dec *encoding.Decoder) (rune, DecodeStatus) {
	if d.dbcsLead == 0 {
		if b < 0x80 {
			return rune(b), DecodeRune
		}
		d.dbcsLead = b
		return 0, DecodePending
	}

	lead := d.dbcsLead
	d.dbcsLead = 0
	out := make([]byte, 8)
	n, _, err := dec.Transform(out, []byte{lead, b}, true)
	if err != nil || n == 0 {
		return replacementChar, DecodeInvalid
	}
	return decodeFirstRune(out[:n]), DecodeRune
}

func decodeFirstRune(b []byte) rune {
	for _, r := range string(b) {
		return r
	}
	return replacementChar
}

// nfcCompose returns the single precomposed rune for base+mark, or base
// unchanged if no precomposed form exists (§4.1 combining marks).
func nfcCompose(base, mark rune) rune {
	composed := norm.NFC.String(string([]rune{base, mark}))
	runes := []rune(composed)
	if len(runes) == 1 {
		return runes[0]
	}
	return base
}
