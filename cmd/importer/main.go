package main

import (
	"fmt"
	"os"

	"github.com/jcao219/new-ro-transit/internal/importer"

	"github.com/spf13/cobra"
)

var (
	inFile  string
	outFile string
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Convert CSV exports into the site's JSON data files",
	Long: `Reads a CSV file with a header row and writes the matching JSON document
used by the site. Blank lng/lat cells leave a place off the map.`,
	SilenceUsage: true,
}

var landmarksCmd = &cobra.Command{
	Use:   "landmarks",
	Short: "Import landmarks (name, lng, lat, description)",
	RunE:  runLandmarks,
}

var restaurantsCmd = &cobra.Command{
	Use:   "restaurants",
	Short: "Import restaurants (name, cuisine, area, notes, website, description, lng, lat)",
	RunE:  runRestaurants,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inFile, "file", "", "Path to the CSV file to import")
	rootCmd.PersistentFlags().StringVar(&outFile, "out", "", "Path of the JSON document to write")
	_ = rootCmd.MarkPersistentFlagRequired("file")
	_ = rootCmd.MarkPersistentFlagRequired("out")

	rootCmd.AddCommand(landmarksCmd, restaurantsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runLandmarks(cmd *cobra.Command, args []string) error {
	f, err := os.Open(inFile)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	landmarks, err := importer.ParseLandmarks(f)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d landmarks\n", len(landmarks))

	if err := importer.WriteDocument(outFile, importer.LandmarksKey, landmarks); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", outFile)
	return nil
}

func runRestaurants(cmd *cobra.Command, args []string) error {
	f, err := os.Open(inFile)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	restaurants, err := importer.ParseRestaurants(f)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d restaurants\n", len(restaurants))

	if err := importer.WriteDocument(outFile, importer.RestaurantsKey, restaurants); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", outFile)
	return nil
}
