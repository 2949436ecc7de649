// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package defs

import (
	_ "embed"
)

// defaultDefs is the definition set shipped with this module, covering the
// representative requirement families in requirements.yaml.
//
//go:embed requirements.yaml
var defaultDefs []byte
