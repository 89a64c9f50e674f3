package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dictation-overlay/internal/region"
)

// regionFile is the on-disk layout of a captured hit region.
type regionFile struct {
	Scale float64       `yaml:"scale"`
	Rects []region.Rect `yaml:"rects"`
}

func newContainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contains",
		Short: "Report whether a point falls inside the hit region",
		Long:  "Report whether a point is interactive. --physical takes device pixels relative to the window, --logical takes CSS pixels.",
		RunE:  runContains,
	}
	cmd.Flags().String("physical", "", "Point in device pixels, as X,Y")
	cmd.Flags().String("logical", "", "Point in CSS pixels, as X,Y")
	cmd.MarkFlagsMutuallyExclusive("physical", "logical")
	cmd.MarkFlagsOneRequired("physical", "logical")
	return cmd
}

func newShapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shape",
		Short: "Print the device-pixel input shape",
		RunE:  runShape,
	}
}

type containsResult struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Space  string  `yaml:"space"`
	Scale  float64 `yaml:"scale"`
	Inside bool    `yaml:"inside"`
}

type shapeResult struct {
	Scale float64             `yaml:"scale"`
	Rects []region.DeviceRect `yaml:"rects"`
}

func runContains(cmd *cobra.Command, args []string) error {
	snap, err := snapshotFromFlags(cmd)
	if err != nil {
		return err
	}

	physical, _ := cmd.Flags().GetString("physical")
	logical, _ := cmd.Flags().GetString("logical")

	res := containsResult{Scale: snap.Scale}
	if physical != "" {
		res.Space = "physical"
		if res.X, res.Y, err = parsePoint(physical); err != nil {
			return err
		}
		res.Inside = snap.ContainsPhysical(res.X, res.Y)
	} else {
		res.Space = "logical"
		if res.X, res.Y, err = parsePoint(logical); err != nil {
			return err
		}
		res.Inside = snap.Contains(res.X, res.Y)
	}

	return printYAML(cmd.OutOrStdout(), res)
}

func runShape(cmd *cobra.Command, args []string) error {
	snap, err := snapshotFromFlags(cmd)
	if err != nil {
		return err
	}
	return printYAML(cmd.OutOrStdout(), shapeResult{Scale: snap.Scale, Rects: snap.DeviceRects()})
}

// snapshotFromFlags loads --file into a store, honoring --scale, so the
// probe sees exactly what the overlay would after UpdateRegion.
func snapshotFromFlags(cmd *cobra.Command) (region.Snapshot, error) {
	path, _ := cmd.Flags().GetString("file")
	rf, err := loadRegionFile(path)
	if err != nil {
		return region.Snapshot{}, err
	}

	if cmd.Flags().Changed("scale") {
		rf.Scale, _ = cmd.Flags().GetFloat64("scale")
	}
	if !region.ValidScale(rf.Scale) {
		fmt.Fprintf(cmd.ErrOrStderr(), "invalid scale %v, using 1\n", rf.Scale)
		rf.Scale = 1
	}

	store := region.NewStore()
	store.Update(rf.Rects, rf.Scale)
	return store.Read(), nil
}

func loadRegionFile(path string) (regionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return regionFile{}, fmt.Errorf("failed to read region file: %w", err)
	}

	var rf regionFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return regionFile{}, fmt.Errorf("failed to parse region file %s: %w", path, err)
	}
	return rf, nil
}

func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q: want X,Y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
