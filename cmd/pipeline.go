/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/internal/iocatalog"
	"github.com/gnames/gnclimate/internal/ioprocess"
	"github.com/gnames/gnclimate/internal/ioraster"
	"github.com/gnames/gnclimate/internal/iosink"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/gnames/gnclimate/pkg/config"
	"github.com/gnames/gnclimate/pkg/lifecycle"
)

// pipeline holds what every processing command needs.
type pipeline struct {
	cat  *climate.Catalog
	proc lifecycle.Processor
	sink lifecycle.Sink
}

// commandContext is cancelled on interrupt, so partial output files are
// not renamed into place.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newPipeline(ctx context.Context, c *config.Config) (*pipeline, error) {
	cat, err := iocatalog.Load(config.CatalogFilePath(c.HomeDir))
	if err != nil {
		return nil, err
	}

	rd := ioraster.New(cat, c.DataPath())
	proc := ioprocess.New(c, cat, rd)

	sink, err := iosink.New(ctx, c)
	if err != nil {
		return nil, err
	}

	gn.Info("Output format <em>%s</em>", c.Output.Format)
	return &pipeline{cat: cat, proc: proc, sink: sink}, nil
}

func (p *pipeline) close() {
	if err := p.sink.Close(); err != nil {
		gn.PrintErrorMessage(err)
	}
}
