package main

import (
	"context"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/goware/urlx"
	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Target struct {
		URL string `long:"target" description:"collector base URL to deliver batches to" default:"http://localhost:8282"`
	} `group:"Target Options"`
	Rates struct {
		HTTP       int `long:"http-rate" description:"records per second of normal HTTP access logs (0 disables)" default:"100"`
		HTTPError  int `long:"http-error-rate" description:"records per second of HTTP error logs (0 disables)" default:"10"`
		HTTPLeak   int `long:"http-leak-rate" description:"events per second of failed charges leaking card numbers (0 disables)" default:"1"`
		Flow       int `long:"flow-rate" description:"records per second of accepted VPC flow logs (0 disables)" default:"0"`
		FlowAttack int `long:"flow-attack-rate" description:"records per second of SSH brute-force VPC flow logs (0 disables)" default:"0"`
	} `group:"Rate Options"`
	Batch struct {
		Size int           `long:"batch-size" description:"maximum records per delivered batch" default:"5"`
		Wait time.Duration `long:"batch-timeout" description:"maximum time to hold a partial batch before delivering it" default:"5s"`
	} `group:"Batch Options"`
	Global struct {
		Sender   string `long:"sender" description:"type of sender" choice:"http" choice:"print" choice:"dummy" default:"http"`
		LogLevel string `long:"loglevel" description:"level of logging" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"warn"`
		Seed     string `long:"seed" description:"string seed for the random number generator (defaults to time-based)" yaml:",omitempty"`
		Config   string `long:"config" description:"name of config file to load(*)" default:"" yaml:"-"`
		WriteCfg string `long:"writecfg" description:"write effective YAML config to the specified output file and quit(*)" default:"" yaml:"-"`
	} `group:"Global Options"`
	target *url.URL
}

func (o *Options) CopyStarredFieldsFrom(other *Options) {
	o.Global.Config = other.Global.Config
	o.Global.WriteCfg = other.Global.WriteCfg
}

func (o *Options) DebugLevel() int {
	switch o.Global.LogLevel {
	case "debug":
		return 3
	case "info":
		return 2
	case "warn":
		return 1
	default:
		return 0
	}
}

// parseTarget cleans up the collector base URL, defaulting the scheme to
// plain http since the usual target is a local agent. Exits if it can't
// make sense of the value.
func parseTarget(log Logger, target string) *url.URL {
	u, err := urlx.ParseWithDefaultScheme(target, "http")
	if err != nil {
		log.Fatal("unable to parse target: %s\n", err)
	}
	return u
}

func ReadConfig(opts *Options, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	err = dec.Decode(opts)
	if err != nil {
		return err
	}
	log.Printf("read config from %s\n", filename)
	return nil
}

func WriteConfig(opts *Options, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	err = enc.Encode(opts)
	if err != nil {
		return err
	}
	log.Printf("wrote config to %s\n", filename)
	return nil
}

func main() {
	cmdopts := &Options{}

	parser := flags.NewParser(cmdopts, flags.Default)
	parser.Usage = `[OPTIONS]

	dynamo generates synthetic log traffic for exercising log pipelines. It
	emits HTTP access logs from a sample e-commerce store (including a
	low-rate credit card data leak) and VPC flow logs (including an SSH
	brute-force attack), each category at its own rate in records per
	second. A rate of 0 disables that category.

	Records are grouped into batches of --batch-size, a partial batch is
	held at most --batch-timeout, and each batch is delivered as a
	gzip-compressed JSON array POSTed to {target}/api/v2/logs -- the shape
	a Datadog agent source expects. Delivery is best effort: failed batches
	are logged and dropped, and generation continues.

	Options can be set in a YAML config file specified with
	"--config=FILENAME". If a config file is used, it MUST be used for all
	options except the ones marked in the help text with (*) -- those
	CANNOT be set in the config file.
	`

	_, err := parser.Parse()
	if err != nil {
		switch flagsErr := err.(type) {
		case *flags.Error:
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		log.Fatalf("error reading command line: %v", err)
	}

	opts := &Options{}
	if cmdopts.Global.Config != "" {
		if err := ReadConfig(opts, cmdopts.Global.Config); err != nil {
			log.Fatalf("err %v -- unable to read config file %s", err, cmdopts.Global.Config)
		}
		opts.CopyStarredFieldsFrom(cmdopts)
	} else {
		opts = cmdopts
	}

	if opts.Global.WriteCfg != "" {
		if err := WriteConfig(opts, opts.Global.WriteCfg); err != nil {
			log.Fatalf("unable to write config: %s\n", err)
		}
		os.Exit(0)
	}

	logger := NewLogger(opts.DebugLevel())

	if opts.Global.Seed == "" {
		opts.Global.Seed = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	petname.NonDeterministicMode()

	// No generation without identity: every record must carry the hostname.
	hostname, err := os.Hostname()
	if err != nil {
		logger.Fatal("could not get hostname: %v\n", err)
	}
	meta := NewCommonMetadata(hostname)

	opts.target = parseTarget(logger, opts.Target.URL)
	logger.Info("target: %s, hostname: %s\n", opts.target.String(), hostname)

	var sender Sender
	switch opts.Global.Sender {
	case "dummy":
		sender = NewSenderDummy(logger)
	case "print":
		sender = NewSenderPrint(logger)
	case "http":
		sender = NewSenderHTTP(opts.target, logger)
	}

	// ctrl-c cancels the context; generators observe it and drain out,
	// the queue closes, and the batcher gets one final flush.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records := StartGenerators(ctx, Categories(opts), meta, opts.Global.Seed, logger)

	batcher := NewBatcher(opts.Batch.Size, opts.Batch.Wait, sender, logger)
	batcher.Run(records)
	sender.Close()
}
