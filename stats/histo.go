/*
 * histo.go, part of ffdata.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package stats

import (
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Histogram counts values in the bins delimited by its dividers. The ith bin
// contains the values v with dividers[i] <= v < dividers[i+1]. Values out of
// the range of the dividers are omitted.
type Histogram struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// Dividers returns bins+1 equally spaced dividers from lo to hi.
func Dividers(lo, hi float64, bins int) []float64 {
	if bins < 1 {
		bins = 1
	}
	return floats.Span(make([]float64, bins+1), lo, hi)
}

// NewHistogram returns a new histogram from the dividers and rawdata given.
// rawdata can be nil, in which case an empty histogram is created. rawdata
// is not modified.
func NewHistogram(dividers []float64, rawdata []float64) *Histogram {
	if len(dividers) < 2 {
		panic("ffdata/stats: a histogram needs at least 2 dividers")
	}
	H := &Histogram{dividers: append([]float64(nil), dividers...)}
	H.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		H.rehisto(append([]float64(nil), rawdata...))
	}
	return H
}

func (H *Histogram) rehisto(rawdata []float64) {
	sort.Float64s(rawdata)
	//stat.Histogram panics with values out of the dividers' range
	//so they are removed before the call.
	maxi := sort.SearchFloat64s(rawdata, H.dividers[len(H.dividers)-1])
	mini := sort.SearchFloat64s(rawdata, H.dividers[0])
	rawdata = rawdata[mini:maxi]
	H.total = len(rawdata)
	H.histo = stat.Histogram(nil, H.dividers, rawdata, nil)
}

// Total returns the number of values in the histogram.
func (H *Histogram) Total() int { return H.total }

// Normalize scales the bins so they add up to one. It does nothing on an
// empty or already normalized histogram.
func (H *Histogram) Normalize() {
	if H.total <= 0 || H.normalized {
		return
	}
	H.normalized = true
	floats.Scale(1/float64(H.total), H.histo)
}

func (H *Histogram) String() string {
	d := make([]string, 0, len(H.histo))
	h := make([]string, 0, len(H.histo))
	for i, v := range H.histo {
		d = append(d, fmt.Sprintf("%6.1f-%6.1f", H.dividers[i], H.dividers[i+1]))
		h = append(h, fmt.Sprintf("%13.3f", v))
	}
	return fmt.Sprintf("Normalized: %v, TotalData: %d\n%s\n%s", H.normalized, H.total, strings.Join(d, " "), strings.Join(h, " "))
}

type jsonHistogram struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (H *Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonHistogram{
		Normalized: H.normalized,
		Total:      H.total,
		Dividers:   H.dividers,
		Histo:      H.histo,
	})
}

// Plot saves a bar plot of the histogram to filename. The format is taken from
// the extension (png, svg, pdf...).
func (H *Histogram) Plot(title, xlabel, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Structures"
	if H.normalized {
		p.Y.Label.Text = "Fraction of structures"
	}
	bins := make([]plotter.HistogramBin, len(H.histo))
	for i, v := range H.histo {
		bins[i] = plotter.HistogramBin{Min: H.dividers[i], Max: H.dividers[i+1], Weight: v}
	}
	h := &plotter.Histogram{
		Bins:      bins,
		Width:     H.dividers[1] - H.dividers[0],
		FillColor: color.Gray{Y: 160},
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(h)
	p.Add(plotter.NewGrid())
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
