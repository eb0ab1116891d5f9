package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/logicossoftware/go-stego"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// readMessage takes the message from -m or, failing that, from a file.
func readMessage(text, path string) ([]byte, error) {
	if text != "" && path != "" {
		return nil, errors.New("pass either --message or --message-file, not both")
	}
	if path != "" {
		return os.ReadFile(path)
	}
	return []byte(text), nil
}

func newEncodeCmd(a *app) *cobra.Command {
	var text, file string
	cmd := &cobra.Command{
		Use:   "encode <image>",
		Short: "Hide a message in an image, rewriting it in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(text, file)
			if err != nil {
				return err
			}
			if err := a.reg.Encode(args[0], msg, a.key, stego.WithCompression(a.cfg.Comp())); err != nil {
				return err
			}
			logrus.Infof("message of %s hidden in %s", humanize.Bytes(uint64(len(msg))), args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "message", "m", "", "message text")
	cmd.Flags().StringVarP(&file, "message-file", "f", "", "read the message from a file")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "decode <image>",
		Short: "Recover a hidden message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.reg.Decode(args[0], a.key, stego.WithDecompression(a.cfg.Comp()))
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.WriteFile(out, msg, 0o644); err != nil {
					return err
				}
				logrus.Infof("wrote %s", out)
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(msg))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the message to a file instead of stdout")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var text, file string
	cmd := &cobra.Command{
		Use:   "check <image>",
		Short: "Report whether a message fits, without modifying the image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(text, file)
			if err != nil {
				return err
			}
			ok, err := a.reg.CanEncode(args[0], msg, stego.WithCompression(a.cfg.Comp()))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: message of %d bytes does not fit in %s", stego.ErrCapacity, len(msg), args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "message of %d bytes fits in %s\n", len(msg), args[0])
			return err
		},
	}
	cmd.Flags().StringVarP(&text, "message", "m", "", "message text")
	cmd.Flags().StringVarP(&file, "message-file", "f", "", "read the message from a file")
	return cmd
}

func newDimsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dims <image>",
		Short: "Print the width and height of a BMP or PPM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.reg.ImageDimensions(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d x %d\n", d.Width, d.Height)
			return err
		},
	}
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <image>",
		Short: "Check container structure and the embedded frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.reg.Verify(args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return err
		},
	}
}

type infoReport struct {
	Path          string `json:"path"`
	Format        string `json:"format"`
	Size          string `json:"size"`
	Modified      string `json:"modified"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
	CapacityBits  int64  `json:"capacity_bits"`
	CapacityBytes string `json:"capacity_bytes"`
	Payload       string `json:"payload"`
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>",
		Short: "Print format, size, dimensions and capacity as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			st, err := os.Stat(path)
			if err != nil {
				return err
			}
			r := infoReport{
				Path:     path,
				Format:   stego.DetectFormat(path).String(),
				Size:     humanize.Bytes(uint64(st.Size())),
				Modified: humanize.Time(st.ModTime()),
			}
			if d, err := a.reg.ImageDimensions(path); err == nil {
				r.Width, r.Height = d.Width, d.Height
			} else if !errors.Is(err, stego.ErrUnsupportedFormat) {
				return err
			}
			if r.CapacityBits, err = a.reg.Capacity(path); err != nil {
				return err
			}
			r.CapacityBytes = humanize.Bytes(uint64(r.CapacityBits / 8))
			r.Payload = "valid"
			if err := a.reg.Verify(path); err != nil {
				r.Payload = err.Error()
			}
			b, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}
