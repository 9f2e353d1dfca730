// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

// Package main runs the Terraform Provider for the SafePlots listing platform.
//
// The main package wires the provider address and debug flag and starts
// the Terraform Plugin Framework server. Use the -debug flag to attach
// a debugger such as Delve.
package main
