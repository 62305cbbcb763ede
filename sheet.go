package batticon

import (
	"image"
	"image/color"
	"image/draw"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/esimov/batticon/imop"
)

// Contact sheet geometry.
const (
	SheetScale   = 2 // icon magnification factor
	SheetPadding = 8
)

// Menu bar colors the sheet previews the icons on, with the tint
// a host platform applies to template images over each of them.
var (
	BarLight  = color.NRGBA{R: 236, G: 236, B: 236, A: 255}
	BarDark   = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	TintLight = color.NRGBA{R: 0, G: 0, B: 0, A: 230}
	TintDark  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// result holds a rendered sheet cell.
type result struct {
	perc uint8
	cell *image.NRGBA
	err  error
}

// Preview shows how a host platform displays the icon on a menu bar.
// Template icons keep their alpha only, painted with the tint color;
// color icons are layered over the bar as they are.
func Preview(icon *image.NRGBA, mode Mode, bar, tint color.NRGBA) *image.NRGBA {
	op := imop.InitOp()
	src := icon

	if mode == ModeTemplate {
		op.Set(imop.SrcIn)
		src = op.Draw(nil, imaging.New(icon.Bounds().Dx(), icon.Bounds().Dy(), tint), icon).Img
	}

	op.Set(imop.SrcOver)
	return op.Draw(nil, src, imaging.New(icon.Bounds().Dx(), icon.Bounds().Dy(), bar)).Img
}

// SheetSize returns the pixel dimensions of a sheet laid out in cols columns.
func SheetSize(cols int) image.Point {
	if cols <= 0 {
		cols = 1
	}
	rows := (MaxPercentage + cols) / cols
	cw, ch := cellSize()
	return image.Pt(cols*cw+SheetPadding, rows*ch+SheetPadding)
}

func cellSize() (int, int) {
	side := IconSize * SheetScale
	return 2*side + 2*SheetPadding, side + SheetPadding
}

// Sheet renders every percentage from 0 to 100, magnified and previewed on
// a light and a dark menu bar, into a grid of cols columns. Icons are
// rendered concurrently by the given number of workers.
func (r *Renderer) Sheet(cols, workers int) (*image.NRGBA, error) {
	if cols <= 0 {
		cols = 1
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	size := SheetSize(cols)
	sheet := imaging.New(size.X, size.Y, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	done := make(chan struct{})
	defer close(done)

	percs := make(chan uint8)
	go func() {
		defer close(percs)
		for p := 0; p <= MaxPercentage; p++ {
			select {
			case percs <- uint8(p):
			case <-done:
				return
			}
		}
	}()

	res := make(chan result)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for p := range percs {
				cell, err := r.sheetCell(p)
				select {
				case res <- result{perc: p, cell: cell, err: err}:
				case <-done:
					return
				}
			}
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(res)
		wg.Wait()
	}()

	cw, ch := cellSize()
	for rs := range res {
		if rs.err != nil {
			return nil, rs.err
		}
		col, row := int(rs.perc)%cols, int(rs.perc)/cols
		at := image.Pt(SheetPadding+col*cw, SheetPadding+row*ch)
		draw.Draw(sheet, rs.cell.Bounds().Add(at), rs.cell, image.Point{}, draw.Src)
	}

	return sheet, nil
}

// sheetCell renders one percentage as a light and a dark preview side by side.
func (r *Renderer) sheetCell(perc uint8) (*image.NRGBA, error) {
	icon, err := r.Icon(perc)
	if err != nil {
		return nil, err
	}

	side := IconSize * SheetScale
	mode := ModeFor(perc)
	light := imaging.Resize(Preview(icon, mode, BarLight, TintLight), side, side, imaging.NearestNeighbor)
	dark := imaging.Resize(Preview(icon, mode, BarDark, TintDark), side, side, imaging.NearestNeighbor)

	cell := imaging.New(2*side+SheetPadding, side, color.Transparent)
	cell = imaging.Paste(cell, light, image.Pt(0, 0))
	cell = imaging.Paste(cell, dark, image.Pt(side+SheetPadding, 0))

	return cell, nil
}
