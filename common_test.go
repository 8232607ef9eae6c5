package svlog

import "sync"

// FakeConsole records what the console leg printed.
type FakeConsole struct {
	mu    sync.Mutex
	lines []string // PrintLine calls
	plus  []string // PrintLinePlus calls
}

func (c *FakeConsole) PrintLine(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, text)
}

func (c *FakeConsole) PrintLinePlus(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plus = append(c.plus, text)
}

func (c *FakeConsole) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func (c *FakeConsole) Plus() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.plus...)
}

type writeRecord struct {
	content string
	newLine bool
}

// FakeCallback records sink fan-out.
type FakeCallback struct {
	file    []writeRecord
	console []writeRecord
}

func (c *FakeCallback) OnWriteToFile(content string, newLine bool) {
	c.file = append(c.file, writeRecord{content, newLine})
}

func (c *FakeCallback) OnWriteToConsole(content string, newLine bool) {
	c.console = append(c.console, writeRecord{content, newLine})
}
