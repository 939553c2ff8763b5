/*
 * doc.go, part of guia.
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
Package guia implements guiding potentials for protein-backbone diffusion
samplers: differentiable scalar functions of a candidate structure that the
sampler pushes uphill, by adding their gradient to its denoising updates, to
bias designs toward compactness, contact formation, hydrogen bonding, a
target shape, a bound substrate, or low force-field energy.

Each potential is built once from the registry in this package (see New and
Implemented) and then scored once per sampling step through the Potential
interface. The per-design state some potentials need (the motif mask, the
recorded motif and substrate coordinates, the current sequence) travels in
a Context owned by the sampler. Gradients come from Gradient and
MaskedGradient, by central finite differences; the simple kernels also have
analytic derivatives (ContactsGrad, LJGrad).

Scores can be NaN at singular geometries (see Contacts). The package does
not mask that, the sampler decides whether to skip or clip such a step.

The subpackages hold the pieces that are useful on their own: xyz the
coordinate matrices, dssp the soft backbone hydrogen-bond map, trace a
writer and a reader for per-step score series, and guiaplot their plotting.
*/
package guia
