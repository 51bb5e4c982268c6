package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"niedziele/internal/capture"
	"niedziele/internal/config"
	"niedziele/internal/ics"
	appLog "niedziele/internal/log"
	"niedziele/internal/model"
	"niedziele/internal/registry"
)

var errMismatch = errors.New("calendar does not match registry")

// registryFlags are shared by the offline commands.
type registryFlags struct {
	configPath string
	year       int
}

func (f *registryFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path to config file (defaults and NIEDZIELE_* env when empty)")
	fs.IntVar(&f.year, "year", 0, "Year to use; ignores configured dates (default: configured or current year)")
}

// loadConfig reads path when given. Offline commands never create a
// config file.
func (f *registryFlags) loadConfig() (*config.Config, error) {
	if f.configPath != "" {
		return config.Load(f.configPath)
	}
	conf := config.DefaultConfig()
	if err := config.ApplyEnv(conf); err != nil {
		return nil, err
	}
	conf.Normalize()
	return conf, nil
}

func (f *registryFlags) resolve() (*config.Config, *registry.Registry, error) {
	conf, err := f.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	applyLogLevel(conf)

	if f.year != 0 {
		reg, err := registry.Resolve(f.year, nil)
		return conf, reg, err
	}

	year := conf.Year
	if year == 0 && len(conf.Dates) == 0 {
		loc, err := time.LoadLocation(conf.Timezone)
		if err != nil {
			loc = time.Local
		}
		year = time.Now().In(loc).Year()
	}
	reg, err := registry.Resolve(year, conf.Dates)
	return conf, reg, err
}

func runExport(args []string) error {
	var rf registryFlags
	var out string
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	rf.register(fs)
	fs.StringVar(&out, "out", "", "Output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, reg, err := rf.resolve()
	if err != nil {
		return err
	}

	if out == "" {
		return ics.Write(os.Stdout, reg.Dates)
	}
	if err := os.WriteFile(out, []byte(ics.Export(reg.Dates)), 0o644); err != nil {
		return err
	}
	appLog.Info("calendar exported", "year", reg.Year, "count", reg.Len(), "out", out)
	return nil
}

func runDates(args []string) error {
	var rf registryFlags
	fs := flag.NewFlagSet("dates", flag.ContinueOnError)
	rf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, reg, err := rf.resolve()
	if err != nil {
		return err
	}
	for _, s := range reg.Strings() {
		fmt.Println(s)
	}
	return nil
}

func runVerify(args []string) error {
	var rf registryFlags
	var file, url string
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	rf.register(fs)
	fs.StringVar(&file, "file", "", "Calendar file to check")
	fs.StringVar(&url, "url", "", "Calendar URL to check, e.g. https://example.com/calendar")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (file == "") == (url == "") {
		return errors.New("exactly one of --file or --url is required")
	}

	_, reg, err := rf.resolve()
	if err != nil {
		return err
	}

	var body []byte
	if file != "" {
		body, err = os.ReadFile(file)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		body, err = ics.NewFetcher(nil).Fetch(ctx, url)
	}
	if err != nil {
		return err
	}

	got, err := ics.ReadDates(bytes.NewReader(body))
	if err != nil {
		return err
	}
	return report(os.Stdout, reg, got)
}

// report prints the comparison and returns errMismatch unless the calendar
// has exactly one event per registry date.
func report(w io.Writer, reg *registry.Registry, got []model.Date) error {
	cmp := registry.Compare(reg.Dates, got)

	fmt.Fprintf(w, "registry %d (%s): %d dates, calendar: %d events\n", reg.Year, reg.Source, reg.Len(), len(got))
	for _, d := range cmp.Missing {
		fmt.Fprintf(w, "  missing     %s\n", d)
	}
	for _, d := range cmp.Unexpected {
		fmt.Fprintf(w, "  unexpected  %s\n", d)
	}
	invalid := registry.Validate(reg.Year, got)
	if invalid != nil {
		fmt.Fprintf(w, "  invalid     %v\n", invalid)
	}

	if !cmp.OK() || invalid != nil || len(got) != reg.Len() {
		return errMismatch
	}
	if !cmp.OrderMatches {
		fmt.Fprintln(w, "  note: same dates in a different order")
	}
	fmt.Fprintln(w, "OK")
	return nil
}

func runCapture(args []string) error {
	var rf registryFlags
	var url, out string
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.StringVar(&rf.configPath, "config", "", "Path to config file (defaults and NIEDZIELE_* env when empty)")
	fs.StringVar(&url, "url", "", "Page to capture (default: base_url or listen address)")
	fs.StringVar(&out, "out", "", "Output PNG path (default: capture.output)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	conf, err := rf.loadConfig()
	if err != nil {
		return err
	}
	if url == "" {
		url = conf.PublicURL() + "/"
	}
	if out == "" {
		out = conf.Capture.Output
	}

	opts := captureOptions(conf, url, out)
	if err := capture.PNG(context.Background(), opts); err != nil {
		return err
	}
	appLog.Info("preview captured", "url", url, "output", out)
	return nil
}
