// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package seqlearn is the overall repository for the sequence learning memory
block and its supporting infrastructure.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* bitarr: fixed width bit arrays, the activation state of every block.

* ports: timed Input / Output connections between blocks.  An Output keeps a
history ring of its states, and an Input concatenates children read at fixed
time offsets.

* dendrite: receptor memory -- dendrites of (address, permanence) receptors
over an input bit array, with overlap, permanence learning and receptor relocation.

* seqlearn: the sequence Learner block itself, which learns transitions between
input column patterns by growing dendrites on its own previous outputs, and
reports an anomaly score each step.

* labels: the label Transformer block, which encodes integer labels as bit
patterns to drive a Learner.

* examples: examples/anomaly is a runnable program that detects an anomaly
in a learned sequence of letter labels.
*/
package seqlearn
