package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"grabarr/internal/domain/consts"
)

const (
	tagBaseLen = 1 + // "["
		len(consts.ColorBlue) +
		10 + // "Function: "
		len(consts.ColorReset) +
		3 + // " - "
		len(consts.ColorBlue) +
		6 + // "File: "
		len(consts.ColorReset) +
		3 + // " : "
		len(consts.ColorBlue) +
		6 + // "Line: "
		len(consts.ColorReset) +
		2 // "]\n"
)

// E prints and logs an error message with caller details.
func E(format string, args ...interface{}) string {
	pc, file, line, _ := runtime.Caller(1)

	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.RedError) + tagBaseLen + len(format) + (len(args) * 32))

	b.WriteString(consts.RedError)
	writef(&b, format, args...)
	writeCallerTag(&b, pc, file, line)

	msg := b.String()
	fmt.Print(msg)
	writeLog(msg)

	return msg
}

// W prints and logs a warning message.
func W(format string, args ...interface{}) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.YellowWarn) + len(format) + len("\n") + (len(args) * 32))

	b.WriteString(consts.YellowWarn)
	writef(&b, format, args...)
	b.WriteString("\n")

	msg := b.String()
	fmt.Print(msg)
	writeLog(msg)

	return msg
}

// S prints and logs a success message if the level is within range.
func S(l int, format string, args ...interface{}) string {
	if l > Level {
		return ""
	}

	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.GreenSuccess) + len(format) + len("\n") + (len(args) * 32))

	b.WriteString(consts.GreenSuccess)
	writef(&b, format, args...)
	b.WriteString("\n")

	msg := b.String()
	fmt.Print(msg)
	writeLog(msg)

	return msg
}

// D prints and logs a debug message with caller details if the level is
// within range.
func D(l int, format string, args ...interface{}) string {
	if l > Level {
		return ""
	}

	pc, file, line, _ := runtime.Caller(1)

	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.YellowDebug) + tagBaseLen + len(format) + (len(args) * 32))

	b.WriteString(consts.YellowDebug)
	writef(&b, format, args...)
	writeCallerTag(&b, pc, file, line)

	msg := b.String()
	fmt.Print(msg)
	writeLog(msg)

	return msg
}

// I prints and logs an info message.
func I(format string, args ...interface{}) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.BlueInfo) + len(format) + len("\n") + (len(args) * 32))

	b.WriteString(consts.BlueInfo)
	writef(&b, format, args...)
	b.WriteString("\n")

	msg := b.String()
	fmt.Print(msg)
	writeLog(msg)

	return msg
}

// P prints and logs a plain message with no tag.
func P(format string, args ...interface{}) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(format) + len("\n") + (len(args) * 32))

	writef(&b, format, args...)
	b.WriteString("\n")

	msg := b.String()
	fmt.Print(msg)
	writeLog(msg)

	return msg
}

// writef writes the formatted message into the builder.
func writef(b *strings.Builder, format string, args ...interface{}) {
	if len(args) != 0 {
		fmt.Fprintf(b, format, args...)
	} else {
		b.WriteString(format)
	}
}

// writeCallerTag appends the function/file/line tag.
func writeCallerTag(b *strings.Builder, pc uintptr, file string, line int) {
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())
	file = filepath.Base(file)

	b.WriteRune('[')
	b.WriteString(consts.ColorBlue)
	b.WriteString("Function: ")
	b.WriteString(consts.ColorReset)
	b.WriteString(funcName)
	b.WriteString(" - ")
	b.WriteString(consts.ColorBlue)
	b.WriteString("File: ")
	b.WriteString(consts.ColorReset)
	b.WriteString(file)
	b.WriteString(" : ")
	b.WriteString(consts.ColorBlue)
	b.WriteString("Line: ")
	b.WriteString(consts.ColorReset)
	b.WriteString(strconv.Itoa(line))
	b.WriteString("]\n")
}
