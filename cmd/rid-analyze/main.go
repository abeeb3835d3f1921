package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Parfait-17/Detection-droneV3/internal/adapters/dot11"
	"github.com/Parfait-17/Detection-droneV3/internal/adapters/odid"
	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

var (
	rootCmd = &cobra.Command{
		Use:   "rid-analyze [hex]",
		Short: "Decode Remote ID from 802.11 management frames",
		Long: "rid-analyze decodes a hex-encoded 802.11 management frame (or, with\n" +
			"--payload, a bare ODID message payload) and prints the extracted\n" +
			"Remote ID record as JSON.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive()
			}
			return analyze(args[0])
		},
	}

	payloadMode bool
	minChars    int
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&payloadMode, "payload", false, "treat input as a bare ODID payload instead of a full frame")
	rootCmd.PersistentFlags().IntVar(&minChars, "pattern-min-chars", odid.DefaultMinSignificantChars, "significance threshold for the pattern fallback")
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := rootCmd.Execute(); err != nil {
		slog.Error("analyze failed", "error", err)
		os.Exit(1)
	}
}

func runInteractive() error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	fmt.Fprintln(os.Stderr, "rid-analyze interactive mode. Paste a hex frame and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(os.Stderr, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := analyze(line); err != nil {
			slog.Error("failed to decode frame", "error", err)
		}
	}
	return scanner.Err()
}

func analyze(input string) error {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == ':' {
			return -1
		}
		return r
	}, input)

	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return fmt.Errorf("invalid hex input: %w", err)
	}

	extractor := odid.NewExtractor(odid.WithMinSignificantChars(minChars))
	now := time.Now()

	var rec *domain.RemoteIDRecord
	var found bool

	if payloadMode {
		rec, found = extractor.ExtractPayload(data, now)
	} else {
		info, err := dot11.Classify(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "frame: %s from %s, %d IEs\n", info.Type, info.SourceMAC, len(info.Elements))
		rec, found = extractor.Extract(info.Elements, now)
		if !found {
			rec, found = extractor.SearchPatterns(data, now)
		}
	}

	if !found {
		fmt.Println("no remote id found")
		return nil
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
