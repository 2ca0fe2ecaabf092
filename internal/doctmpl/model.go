// Package doctmpl resolves a document instance into its print layout:
// a pure display tree of text blocks and stamp slots. Renderers never
// throw away a page over missing data; absent fields degrade to
// full-width-space placeholders so the printed columns keep their
// alignment.
package doctmpl

// BlockType tags one layout block of a rendered document.
type BlockType string

const (
	BlockHeading    BlockType = "heading"
	BlockParagraph  BlockType = "paragraph"
	BlockLines      BlockType = "lines"
	BlockSigners    BlockType = "signers"
	BlockContractor BlockType = "contractor"
)

// Align is the horizontal alignment of a block.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// SignerLine is one signer row with its draggable seal slot offset.
type SignerLine struct {
	Text string  `json:"text"`
	Dx   float64 `json:"dx"`
	Dy   float64 `json:"dy"`
}

// Block is one layout block. Which fields are meaningful depends on
// Type: headings and paragraphs carry Text, line groups carry Lines,
// signer blocks carry Signers.
type Block struct {
	Type    BlockType    `json:"type"`
	Text    string       `json:"text,omitempty"`
	Lines   []string     `json:"lines,omitempty"`
	Signers []SignerLine `json:"signers,omitempty"`
	Align   Align        `json:"align,omitempty"`
	Bold    bool         `json:"bold,omitempty"`
	PreWrap bool         `json:"preWrap,omitempty"`
}

// StampSlot is one free-floating stamp placeholder in the page header
// area, offset by the user's drag.
type StampSlot struct {
	Index int     `json:"index"`
	Dx    float64 `json:"dx"`
	Dy    float64 `json:"dy"`
}

// Document is the rendering model for one document instance. The
// front end paints it; batch print walks the same tree.
type Document struct {
	Name         string      `json:"name"`
	Kind         string      `json:"kind"`
	Index        int         `json:"index"`
	Title        string      `json:"title"`
	Unsupported  bool        `json:"unsupported,omitempty"`
	HeaderStamps []StampSlot `json:"headerStamps,omitempty"`
	Blocks       []Block     `json:"blocks"`
	// CustomBody carries the user's free-edited body override when one
	// is stored; the computed blocks are still present for reset.
	CustomBody *string `json:"customBody,omitempty"`
	PrintOn    bool    `json:"printOn"`
}

func heading(text string) Block {
	return Block{Type: BlockHeading, Text: text}
}

func paragraph(text string) Block {
	return Block{Type: BlockParagraph, Text: text}
}

func lines(ls ...string) Block {
	return Block{Type: BlockLines, Lines: ls}
}
