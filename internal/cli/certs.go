package cli

import (
	"fmt"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/bibbank/agriscore/internal/infrastructure/tlsutil"
)

var certsCmd = &urfave.Command{
	Name:  "certs",
	Usage: "Write a self-signed gRPC server certificate for local development",
	Flags: []urfave.Flag{
		&urfave.StringFlag{Name: "out", Usage: "Output directory", Value: "certs"},
		&urfave.StringSliceFlag{Name: "host", Usage: "Host name or IP (repeatable)", Value: urfave.NewStringSlice("localhost", "127.0.0.1")},
		&urfave.DurationFlag{Name: "valid-for", Usage: "Certificate lifetime", Value: 365 * 24 * time.Hour},
	},
	Action: func(c *urfave.Context) error {
		cert, key, err := tlsutil.WriteSelfSigned(c.StringSlice("host"), c.String("out"), c.Duration("valid-for"))
		if err != nil {
			return fmt.Errorf("write certificate: %w", err)
		}
		return encode(c, map[string]string{"cert_file": cert, "key_file": key})
	},
}
