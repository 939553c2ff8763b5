/*
 * doc.go, part of guia
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
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

/*
Package xyz implements a simple type for Nx3 matrices of float64, meant to
represent sets of points in 3D space, such as the atomic coordinates of a
protein backbone. It is a thin layer over gonum's mat.Dense, so the whole
gonum API remains available, plus a few operations that are convenient when
the rows are coordinates: row views, row subsetting and stacking.

Within the package, a "vector" is a row of the matrix, i.e. the cartesian
coordinates of one point.
*/
package xyz
