// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants exports a single boolean constant, Enabled, that is
// only true when the binary is built with the "invariants" build tag. Code
// that wants to panic on programmer errors in development builds but
// degrade gracefully in production guards the check on invariants.Enabled.
package invariants
