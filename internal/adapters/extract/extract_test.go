package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/deckray/deckray/internal/adapters/extract"
	"github.com/deckray/deckray/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeBinary struct {
	text string
	err  error
}

func (f *fakeBinary) Extract(_ context.Context, _ []byte, _ model.Format) (string, error) {
	return f.text, f.err
}

func TestText(t *testing.T) {
	ctx := context.Background()

	Convey("Given plain-text uploads", t, func() {
		e := extract.New()

		Convey("When the file is UTF-8 text", func() {
			text, format, err := e.Text(ctx, []byte("Our startup does X"), "deck.txt")

			So(err, ShouldBeNil)
			So(format, ShouldEqual, model.FormatTXT)
			So(text, ShouldEqual, "Our startup does X")
		})

		Convey("When the file is markdown", func() {
			text, format, err := e.Text(ctx, []byte("# Pitch\ncontent"), "deck.md")

			So(err, ShouldBeNil)
			So(format, ShouldEqual, model.FormatMarkdown)
			So(text, ShouldStartWith, "# Pitch")
		})

		Convey("When the bytes are Latin-1", func() {
			// "café" with a Latin-1 e-acute, invalid as UTF-8.
			text, _, err := e.Text(ctx, []byte{'c', 'a', 'f', 0xe9}, "deck.txt")

			So(err, ShouldBeNil)
			So(text, ShouldEqual, "café")
		})

		Convey("When the extension is unknown", func() {
			_, _, err := e.Text(ctx, []byte("data"), "deck.xyz")

			So(err, ShouldWrap, extract.ErrUnsupportedFormat)
		})
	})

	Convey("Given binary uploads", t, func() {
		Convey("When no binary extractor is wired", func() {
			e := extract.New()
			_, format, err := e.Text(ctx, []byte("%PDF"), "deck.pdf")

			So(err, ShouldWrap, extract.ErrNoBinaryExtractor)
			So(format, ShouldEqual, model.FormatPDF)
		})

		Convey("When the binary extractor succeeds", func() {
			e := extract.New(extract.WithBinaryExtractor(&fakeBinary{text: "slide text"}))
			text, format, err := e.Text(ctx, []byte("PK"), "deck.pptx")

			So(err, ShouldBeNil)
			So(format, ShouldEqual, model.FormatPPTX)
			So(text, ShouldEqual, "slide text")
		})

		Convey("When the binary extractor fails", func() {
			e := extract.New(extract.WithBinaryExtractor(&fakeBinary{err: errors.New("corrupt")}))
			_, _, err := e.Text(ctx, []byte("PK"), "deck.docx")

			So(err, ShouldNotBeNil)
		})
	})
}

func TestDetectFormat(t *testing.T) {
	Convey("Given filenames", t, func() {
		format, ok := extract.DetectFormat("Deck.PDF")
		So(ok, ShouldBeTrue)
		So(format, ShouldEqual, model.FormatPDF)

		_, ok = extract.DetectFormat("archive.zip")
		So(ok, ShouldBeFalse)
	})
}
