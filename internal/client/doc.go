// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command line client of lockbox.
//
// Every command that touches the vault logs in first, unlocks the data
// encryption key in memory, does its work and logs out again. The key is
// never written to disk.
package client
