package cli

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Opener hands URIs such as tel: links to the operating system
type Opener struct {
	GOOS string
	run  func(name string, args ...string) error
	copy func(text string) error
}

// NewOpener creates an opener for the current platform
func NewOpener() *Opener {
	return &Opener{
		GOOS: runtime.GOOS,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
		copy: clipboard.WriteAll,
	}
}

// Command returns the program and arguments that open uri
func (o *Opener) Command(uri string) (string, []string) {
	switch o.GOOS {
	case "darwin":
		return "open", []string{uri}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", uri}
	default:
		return "xdg-open", []string{uri}
	}
}

// Open launches the handler registered for uri
func (o *Opener) Open(uri string) error {
	name, args := o.Command(uri)
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", uri, err)
	}
	return nil
}

// CallResult reports how a call was placed
type CallResult struct {
	Opened bool
	Copied bool
}

// Call opens the tel: link and copies the number to the clipboard. It fails
// only when neither works.
func (o *Opener) Call(telURI, phone string) (CallResult, error) {
	var res CallResult
	openErr := o.Open(telURI)
	res.Opened = openErr == nil

	copyErr := o.copy(phone)
	res.Copied = copyErr == nil

	if !res.Opened && !res.Copied {
		return res, fmt.Errorf("%w; clipboard: %v", openErr, copyErr)
	}
	return res, nil
}
