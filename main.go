package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZacxDev/video-overlay/internal/config"
	"github.com/ZacxDev/video-overlay/pkg/videoprocessor"
)

var (
	rootCmd = &cobra.Command{
		Use:   "video-overlay",
		Short: "Burn timed text overlays into videos",
		Long: `video-overlay renders styled, timed text overlays onto a video with ffmpeg.
It can render from an overlay file or run an HTTP editing service.

Examples:
  # Render the overlays in overlays.json onto input.mp4
  video-overlay render -i input.mp4 -f overlays.json -o output.mp4

  # Print the drawtext filter graph ffmpeg would be given
  video-overlay filters -f overlays.json

  # Run the editor service
  video-overlay serve --config overlay.toml`,
	}

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render text overlays onto a video",
		Long: fmt.Sprintf(`Render the overlays from a JSON file onto a video.

The overlay file uses the edit request shape:
  {"textOverlays": [{"text": "Hi", "position": {"x": 10, "y": 10}, "timestamp": 2, "style": {...}}]}

Supported profiles:
%s
Example:
  video-overlay render -i input.mp4 -f overlays.json -o output.mp4 -p webm`,
			formatSupportedPlatforms()),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.RenderOptions{}

			// Get flags
			opts.InputPath, _ = cmd.Flags().GetString("input")
			opts.OverlaysPath, _ = cmd.Flags().GetString("overlays")
			opts.OutputPath, _ = cmd.Flags().GetString("output")
			opts.Profile, _ = cmd.Flags().GetString("profile")
			opts.Engine, _ = cmd.Flags().GetString("engine")
			opts.FFmpegPath, _ = cmd.Flags().GetString("ffmpeg")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			if opts.InputPath == "" || opts.OutputPath == "" {
				return fmt.Errorf("input path and output path are required")
			}

			written, err := videoprocessor.Render(opts)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n", written)
			return nil
		},
	}

	filtersCmd = &cobra.Command{
		Use:   "filters",
		Short: "Print the ffmpeg filter graph for an overlay file",
		RunE: func(cmd *cobra.Command, args []string) error {
			overlaysPath, _ := cmd.Flags().GetString("overlays")
			duration, _ := cmd.Flags().GetFloat64("duration")
			graph, stages, err := videoprocessor.CompileFilters(overlaysPath, duration)
			if err != nil {
				return err
			}
			if len(stages) == 0 {
				fmt.Println("no overlays")
				return nil
			}
			if split, _ := cmd.Flags().GetBool("split"); split {
				for _, stage := range stages {
					fmt.Println(stage)
				}
				return nil
			}
			fmt.Println(graph)
			return nil
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP editor service",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.ServeOptions{}
			opts.ConfigPath, _ = cmd.Flags().GetString("config")
			opts.Bind, _ = cmd.Flags().GetString("bind")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return videoprocessor.Serve(ctx, opts)
		},
	}

	profilesCmd = &cobra.Command{
		Use:   "profiles",
		Short: "List output profiles and render engines",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Profiles:\n%s", formatSupportedPlatforms())
			fmt.Printf("Engines:\n")
			for _, name := range videoprocessor.GetSupportedEngines() {
				fmt.Printf("- %s\n", name)
			}
		},
	}
)

func formatSupportedPlatforms() string {
	platforms := videoprocessor.GetSupportedPlatforms()
	var sb strings.Builder
	for _, platform := range platforms {
		sb.WriteString(fmt.Sprintf("- %s\n", platform))
	}
	return sb.String()
}

func init() {
	// Render command flags
	renderCmd.Flags().StringP("input", "i", "", "Input video file")
	renderCmd.Flags().StringP("overlays", "f", "", "Overlay JSON file")
	renderCmd.Flags().StringP("output", "o", "", "Output video path")
	renderCmd.Flags().StringP("profile", "p", config.DefaultProfile,
		fmt.Sprintf("Output profile (%s)", strings.Join(videoprocessor.GetSupportedPlatforms(), ", ")))
	renderCmd.Flags().String("engine", config.DefaultEngine,
		fmt.Sprintf("Render engine (%s)", strings.Join(videoprocessor.GetSupportedEngines(), ", ")))
	renderCmd.Flags().String("ffmpeg", "", "Path to the ffmpeg binary (default: look up on PATH)")
	renderCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	renderCmd.MarkFlagRequired("input")
	renderCmd.MarkFlagRequired("output")

	// Filters command flags
	filtersCmd.Flags().StringP("overlays", "f", "", "Overlay JSON file")
	filtersCmd.Flags().Float64P("duration", "d", 0, "Media duration in seconds to clamp overlay windows to")
	filtersCmd.Flags().Bool("split", false, "Print one filter stage per line")

	filtersCmd.MarkFlagRequired("overlays")

	// Serve command flags
	serveCmd.Flags().StringP("config", "c", "", "TOML configuration file")
	serveCmd.Flags().String("bind", "", fmt.Sprintf("Listen address (default %s)", config.DefaultBind))
	serveCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(profilesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
