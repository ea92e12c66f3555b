package lsbmark

import (
	"gonum.org/v1/gonum/stat"

	"github.com/yyyoichi/lsbmark/internal/channel"
	"github.com/yyyoichi/lsbmark/internal/chisq"
)

// Report summarizes the LSB plane of an RGBA8 buffer.
type Report struct {
	// Samples is the number of R, G and B bytes inspected.
	Samples int
	// OnesRatio is the share of inspected bytes whose LSB is set.
	OnesRatio float64
	// ChiSquare is the pairs-of-values statistic.
	ChiSquare float64
	// Probability that the inspected bytes carry embedded data.
	Probability float64
}

// Analyze runs a chi-square steganalysis over every usable byte of buf.
func Analyze(buf []byte) Report {
	return AnalyzePrefix(buf, 1)
}

// AnalyzePrefix inspects only the leading fraction of the usable bytes.
// Embed fills the image front to back, so a short message is easier to
// detect on a short prefix. fraction is clamped to (0, 1].
func AnalyzePrefix(buf []byte, fraction float64) Report {
	if fraction <= 0 || fraction > 1 {
		fraction = 1
	}
	n := int(float64(channel.Usable(len(buf))) * fraction)
	if n == 0 {
		return Report{}
	}

	var (
		hist   [256]int
		lsbs   = make([]float64, n)
		cursor = channel.NewCursor(len(buf))
	)
	for i := range n {
		idx, _ := cursor.Next()
		v := buf[idx]
		hist[v]++
		lsbs[i] = float64(channel.GetBit(v, 0))
	}
	r := chisq.Attack(&hist)
	return Report{
		Samples:     n,
		OnesRatio:   stat.Mean(lsbs, nil),
		ChiSquare:   r.Statistic,
		Probability: r.Probability,
	}
}
