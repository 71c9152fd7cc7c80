package root

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"lifeadmin/internal/api"
	"lifeadmin/internal/logging"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Catch up with catalog changes before accepting requests.
			if _, err := svc.Reevaluate(ctx); err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}
			if !logging.DebugEnabled() {
				gin.SetMode(gin.ReleaseMode)
			}
			return api.NewServer(svc).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")

	return cmd
}
