/*
 * v3_test.go, part of ffdata.
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

package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	assert.Error(Te, err)
	_, err = NewMatrix(nil)
	assert.Error(Te, err)
}

func TestNorm(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 2, 0, -3, 4})
	require.NoError(Te, err)
	assert.InDelta(Te, 3.0, A.Norm(0), 1e-12)
	assert.InDelta(Te, 5.0, A.Norm(1), 1e-12)
	assert.Equal(Te, 0.0, Zeros(1).Norm(0))
}

func TestFloor(Te *testing.T) {
	A, err := NewMatrix([]float64{1.25, -0.5, 0, 2.0, 0.999, -1.75})
	require.NoError(Te, err)
	off := Zeros(2)
	rest := off.Floor(A)
	assert.Equal(Te, []float64{1, -1, 0}, off.RawRowView(0))
	assert.Equal(Te, []float64{2, 0, -2}, off.RawRowView(1))
	assert.InDeltaSlice(Te, []float64{0.25, 0.5, 0}, rest.RawRowView(0), 1e-12)
	assert.InDeltaSlice(Te, []float64{0, 0.999, 0.25}, rest.RawRowView(1), 1e-12)
}

func TestFloorShape(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.PanicsWithValue(Te, ErrShape, func() { Zeros(1).Floor(A) })
}
