package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/recaman/internal/config"
	"github.com/san-kum/recaman/internal/export"
	"github.com/san-kum/recaman/internal/logging"
	"github.com/san-kum/recaman/internal/recaman"
	"github.com/san-kum/recaman/internal/render"
	"github.com/san-kum/recaman/internal/storage"
	"github.com/san-kum/recaman/internal/viz"
)

var (
	dataDir string
	verbose bool
	start   int
	// sequence output
	seqFormat string
	// plot
	plotFormat string
	dpi        int
	lineWidth  float64
	anim       bool
	fps        int
	animDPI    int
	degreeSkip int
	animFormat string
	outDir     string
	configFile string
	preset     string
	save       bool
	// preview
	previewWidth  int
	previewHeight int
	svgPath       string
	// live
	liveWidth  int
	liveHeight int
	liveSkip   int
	liveFPS    int
	theme      string
	recordPath string
	// chart
	chartWidth  int
	chartHeight int
)

var logger = zap.NewNop()

// main executes the root command, exiting with status 1 when a command
// fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, recaman.ErrInsufficientSequence) {
			fmt.Fprintln(os.Stderr, viz.ErrorStyle().Render("Not enough circles to plot"))
		} else {
			fmt.Fprintln(os.Stderr, viz.ErrorStyle().Render("error: "+err.Error()))
		}
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// newRootCmd registers every command and binds its flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "recaman",
		Short:         "generate and draw the Recamán sequence",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".recaman", "render history directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	sequenceCmd := &cobra.Command{
		Use:   "sequence N",
		Short: "print the first N terms",
		Args:  cobra.ExactArgs(1),
		RunE:  printSequence,
	}
	sequenceCmd.Flags().IntVar(&start, "start", 0, "start the sequence with M")
	sequenceCmd.Flags().StringVar(&seqFormat, "format", "list", "output format (list, json, csv)")

	plotCmd := &cobra.Command{
		Use:   "plot [N]",
		Short: "plot the first N terms as semicircles",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotSequence,
	}
	plotCmd.Flags().IntVar(&start, "start", 0, "start the sequence with M")
	plotCmd.Flags().StringVar(&plotFormat, "format", config.DefaultFormat, "plot format (png, svg)")
	plotCmd.Flags().IntVar(&dpi, "dpi", config.DefaultDPI, "dpi of the plot")
	plotCmd.Flags().Float64Var(&lineWidth, "line-width", config.DefaultLineWidth, "line width of circles in points")
	plotCmd.Flags().BoolVar(&anim, "anim", false, "animate the plot")
	plotCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second of the animation")
	plotCmd.Flags().IntVar(&animDPI, "anim-dpi", config.DefaultAnimDPI, "dpi of the animation")
	plotCmd.Flags().IntVar(&degreeSkip, "degree-skip", config.DefaultDegreeSkip, "degrees per animation frame")
	plotCmd.Flags().StringVar(&animFormat, "anim-format", config.DefaultAnimFormat, "animation format (mp4, gif)")
	plotCmd.Flags().StringVar(&outDir, "out", config.DefaultOutDir, "directory holding plots/ and animations/")
	plotCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	plotCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	plotCmd.Flags().BoolVar(&save, "save", false, "record the run in the history directory")

	previewCmd := &cobra.Command{
		Use:   "preview N",
		Short: "draw the semicircles in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  previewSequence,
	}
	previewCmd.Flags().IntVar(&start, "start", 0, "start the sequence with M")
	previewCmd.Flags().IntVar(&previewWidth, "width", 80, "width in cells")
	previewCmd.Flags().IntVar(&previewHeight, "height", 24, "height in cells")
	previewCmd.Flags().StringVar(&svgPath, "svg", "", "also write the preview dots to an svg file")

	liveCmd := &cobra.Command{
		Use:   "live N",
		Short: "animate the semicircles in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&start, "start", 0, "start the sequence with M")
	liveCmd.Flags().IntVar(&liveWidth, "width", 80, "width in cells")
	liveCmd.Flags().IntVar(&liveHeight, "height", 24, "height in cells")
	liveCmd.Flags().IntVar(&liveSkip, "degree-skip", 10, "degrees per animation frame")
	liveCmd.Flags().IntVar(&liveFPS, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&recordPath, "record", viz.DefaultRecordFile, "gif file written when recording with g")
	liveCmd.Flags().StringVar(&theme, "theme", viz.CurrentTheme.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	chartCmd := &cobra.Command{
		Use:   "chart N",
		Short: "chart the term values",
		Args:  cobra.ExactArgs(1),
		RunE:  chartSequence,
	}
	chartCmd.Flags().IntVar(&start, "start", 0, "start the sequence with M")
	chartCmd.Flags().IntVar(&chartWidth, "width", 80, "width in columns")
	chartCmd.Flags().IntVar(&chartHeight, "height", 15, "height in rows")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "recaman.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(sequenceCmd, plotCmd, previewCmd, liveCmd, chartCmd, presetsCmd, initCmd, listCmd, exportCmd)
	return rootCmd
}

func parseCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: N must be an integer, got %q", recaman.ErrInvalidArgument, arg)
	}
	return n, nil
}

func printSequence(cmd *cobra.Command, args []string) error {
	n, err := parseCount(args[0])
	if err != nil {
		return err
	}
	seq, err := recaman.Generate(n, start)
	if err != nil {
		return err
	}
	return writeSequence(os.Stdout, seqFormat, start, seq)
}

func writeSequence(w io.Writer, format string, start int, seq []int) error {
	switch format {
	case "list":
		_, err := fmt.Fprintln(w, formatList(seq))
		return err
	case "json":
		return storage.ExportJSON(w, storage.NewExportData(nil, start, seq))
	case "csv":
		return storage.WriteCSV(w, seq)
	default:
		return fmt.Errorf("unknown format: %s (available: list, json, csv)", format)
	}
}

// formatList prints seq as a bracketed, comma separated list.
func formatList(seq []int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// resolveConfig layers defaults, preset, config file and explicit flags,
// in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	switch {
	case len(args) > 0:
		n, err := parseCount(args[0])
		if err != nil {
			return nil, err
		}
		cfg.Count = n
	case preset == "" && configFile == "":
		return nil, errors.New("N is required unless --preset or --config is given")
	}

	flags := cmd.Flags()
	if flags.Changed("start") {
		cfg.Start = start
	}
	if flags.Changed("format") {
		cfg.Plot.Format = plotFormat
	}
	if flags.Changed("dpi") {
		cfg.Plot.DPI = dpi
	}
	if flags.Changed("line-width") {
		cfg.Plot.LineWidth = lineWidth
	}
	if flags.Changed("anim") {
		cfg.Animation.Enabled = anim
	}
	if flags.Changed("fps") {
		cfg.Animation.FPS = fps
	}
	if flags.Changed("anim-dpi") {
		cfg.Animation.DPI = animDPI
	}
	if flags.Changed("degree-skip") {
		cfg.Animation.DegreeSkip = degreeSkip
	}
	if flags.Changed("anim-format") {
		cfg.Animation.Format = animFormat
	}
	if flags.Changed("out") {
		cfg.OutDir = outDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func plotSequence(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger.Debug("resolved config",
		zap.Int("count", cfg.Count),
		zap.Int("start", cfg.Start),
		zap.String("format", cfg.Plot.Format),
		zap.Bool("anim", cfg.Animation.Enabled),
	)

	seq, circles, err := recaman.Plot(cfg.Count, cfg.Start)
	if err != nil {
		return err
	}

	r := render.NewRenderer(cfg, render.DefaultStyle, logger)
	began := time.Now()
	plotPath, err := r.SavePlot(seq, circles)
	if err != nil {
		return err
	}
	fmt.Printf("plot: %s\n", plotPath)
	logger.Info("plot saved", zap.String("path", plotPath), zap.Duration("elapsed", time.Since(began)))

	var animPath string
	if cfg.Animation.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		began = time.Now()
		animPath, err = r.SaveAnimation(ctx, seq, circles, progressPrinter(os.Stderr))
		if errors.Is(err, render.ErrFFmpegNotFound) {
			logger.Warn("ffmpeg not found, writing gif instead")
			cfg.Animation.Format = "gif"
			animPath, err = r.SaveAnimation(ctx, seq, circles, progressPrinter(os.Stderr))
		}
		if err != nil {
			return err
		}
		fmt.Printf("animation: %s\n", animPath)
		logger.Info("animation saved", zap.String("path", animPath), zap.Duration("elapsed", time.Since(began)))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, seq, plotPath, animPath)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

// progressPrinter redraws a progress bar on w whenever the whole percentage
// changes.
func progressPrinter(w io.Writer) render.ProgressFunc {
	last := -1
	return func(done, total int) {
		pct := done * 100 / total
		if pct == last {
			return
		}
		last = pct
		fmt.Fprintf(w, "\ranimating %s %3d%%", viz.ProgressBar(float64(done)/float64(total), 30), pct)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}

func sequenceAndCircles(arg string) ([]int, []recaman.Circle, error) {
	n, err := parseCount(arg)
	if err != nil {
		return nil, nil, err
	}
	return recaman.Plot(n, start)
}

// checkSize rejects terminal view sizes that cannot hold a canvas.
func checkSize(w, h int) error {
	if w < 1 || h < 1 {
		return fmt.Errorf("%w: size must be at least 1x1, got %dx%d", recaman.ErrInvalidArgument, w, h)
	}
	return nil
}

func previewSequence(cmd *cobra.Command, args []string) error {
	if err := checkSize(previewWidth, previewHeight); err != nil {
		return err
	}
	seq, circles, err := sequenceAndCircles(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.TitleStyle().Render(fmt.Sprintf("recaman %d terms from %d", len(seq), start)))
	canvas := viz.PreviewCanvas(seq, circles, previewWidth, previewHeight)
	fmt.Fprintln(out, viz.CanvasStyle().Render(canvas.String()))

	if svgPath != "" {
		if err := export.WriteCanvasSVG(svgPath, canvas, 4, render.DefaultStyle); err != nil {
			return err
		}
		fmt.Fprintf(out, "svg: %s\n", svgPath)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := checkSize(liveWidth, liveHeight); err != nil {
		return err
	}
	seq, circles, err := sequenceAndCircles(args[0])
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	m := viz.NewLiveModel(seq, circles, liveWidth, liveHeight, liveSkip, liveFPS).RecordTo(recordPath)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func chartSequence(cmd *cobra.Command, args []string) error {
	if err := checkSize(chartWidth, chartHeight); err != nil {
		return err
	}
	n, err := parseCount(args[0])
	if err != nil {
		return err
	}
	seq, err := recaman.Generate(n, start)
	if err != nil {
		return err
	}
	if len(seq) == 0 {
		return fmt.Errorf("no data to chart")
	}
	fmt.Println(viz.Chart(seq, chartWidth, chartHeight))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tN\tSTART\tFORMAT\tDPI\tANIM")
	for _, name := range names {
		p := config.GetPreset(name)
		animation := "-"
		if p.Animation.Enabled {
			animation = fmt.Sprintf("%s@%dfps", p.Animation.Format, p.Animation.FPS)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t%s\n", name, p.Count, p.Start, p.Plot.Format, p.Plot.DPI, animation)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tN\tSTART\tTIME\tPLOT\tANIMATION")

	for _, run := range runs {
		animation := run.AnimationPath
		if animation == "" {
			animation = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n",
			run.ID,
			run.Count,
			run.Start,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.PlotPath,
			animation,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	seq, err := st.LoadSequence(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, storage.NewExportData(meta, meta.Start, seq))
}
