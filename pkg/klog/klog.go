// Copyright 2024 The x86intr Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package klog is the logger collaborator from spec §6: info/warn/panic
// sinks that take a format string, arguments, and (implicitly) the call
// site. It wraps logrus, the structured logger already used elsewhere in
// the reference corpus, rather than hand-rolling one.
package klog

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

// std is the package's own logrus logger, created with logrus.New; all
// info/warn/panic sinks write through it.
var std = logrus.New()

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "???"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// Infof logs an informational line, tagged with the call site. The write
// is synchronous and goes through logrus's own lock.
func Infof(format string, args ...any) {
	std.WithField("at", caller()).Infof(format, args...)
}

// Warnf logs a warning line, used for the unhandled-interrupt case in
// spec §4.5 step 4 and the registration-failure case in spec §7.
func Warnf(format string, args ...any) {
	std.WithField("at", caller()).Warnf(format, args...)
}

// Panicf logs the formatted message at error level and then panics with it
// as a string.
// It never returns, matching spec §6's logger contract and §7's
// architectural-fatal error kind.
func Panicf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	std.WithField("at", caller()).Error(msg)
	panic(msg)
}

// SetOutput lets the boot sequence redirect log output (e.g. to a serial
// console writer instead of the default stderr).
func SetOutput(w interface{ Write([]byte) (int, error) }) {
	std.SetOutput(w)
}
