package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sbp-go/internal/app"
	"sbp-go/internal/structure"
)

// addProjectFlags registers the flags shared by create and preview.
func addProjectFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("type", "t", "", "Project type: photo, video or both")
	f.StringP("work", "w", "", "Work type: client or personal")
	f.StringP("project", "p", "", "Project name")
	f.StringP("date", "d", "", "Project date as YYYY-MM-DD (default today)")
	f.StringP("client", "c", "", "Client name, required for client work")
	f.Bool("capture-one", false, "Add a Capture One folder to the photo branch")
	f.Bool("proxies", false, "Add a Proxies folder to the video branch")
	f.String("cameras", "", `Camera folders as "purpose:camera[:role],..." (video only)`)
}

// projectConfig builds a structure.Config from the flags. Flags left unset
// fall back to the defaults section of the config file.
func projectConfig(cmd *cobra.Command, a *app.SBPApp) (structure.Config, error) {
	f := cmd.Flags()
	typ, _ := f.GetString("type")
	work, _ := f.GetString("work")
	project, _ := f.GetString("project")
	date, _ := f.GetString("date")
	client, _ := f.GetString("client")
	cameras, _ := f.GetString("cameras")

	defaults := a.Config().Defaults
	captureOne := defaults.IncludeCaptureOne
	if f.Changed("capture-one") {
		captureOne, _ = f.GetBool("capture-one")
	}
	proxies := defaults.IncludeProxies
	if f.Changed("proxies") {
		proxies, _ = f.GetBool("proxies")
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	cfg := structure.Config{
		ProjectType:       structure.ProjectType(strings.ToLower(typ)),
		WorkType:          structure.WorkType(strings.ToLower(work)),
		ProjectName:       project,
		ProjectDate:       date,
		ClientName:        client,
		IncludeCaptureOne: captureOne,
		IncludeProxies:    proxies,
	}

	if cameras != "" {
		assignments, err := structure.ParseCameraAssignments(cameras)
		if err != nil {
			return cfg, err
		}
		if cfg.ProjectType != structure.ProjectPhoto {
			cfg.UseCameraFolders = true
			cfg.CameraAssignments = a.ResolveCameras(assignments)
		}
	}
	return cfg, nil
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project structure archive",
	Example: `  sbp create -t photo -w personal -p "Sunset Shoot" --capture-one
  sbp create -t both -w client -c "ABC Corp" -p Launch --cameras main:lumix,BTS:dji-pocket:bts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd, "create")
		if err != nil {
			return err
		}
		defer a.Close()

		cfg, err := projectConfig(cmd, a)
		if err != nil {
			return err
		}

		result, err := a.Create(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		printPlan(os.Stdout, result.Plan)
		fmt.Println()
		printCreated(os.Stdout, result)
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the folder tree without writing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := newApp(cmd.Context(), cmd, "preview")
		if err != nil {
			return err
		}
		defer a.Close()

		cfg, err := projectConfig(cmd, a)
		if err != nil {
			return err
		}

		plan, err := a.Preview(cfg)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		}
		printPlan(os.Stdout, plan)
		return nil
	},
}

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Create the shared Assets & Resources library archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd, "assets")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.CreateAssets(cmd.Context())
		if err != nil {
			return err
		}

		printPlan(os.Stdout, result.Plan)
		fmt.Println()
		printCreated(os.Stdout, result)
		return nil
	},
}

var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "List known cameras, purposes and roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd, "cameras")
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println(headingStyle.Render("Cameras"))
		for _, c := range a.Cameras() {
			fmt.Printf("  %-12s %s\n", c.Name, dimStyle.Render(c.Brand))
		}

		fmt.Println(headingStyle.Render("Purposes"))
		fmt.Printf("  %s\n", strings.Join(structure.Purposes(), ", "))

		fmt.Println(headingStyle.Render("Roles"))
		for _, r := range structure.Roles() {
			label := structure.RoleLabel(r)
			if r == structure.RoleMain {
				label = "(no nested folder)"
			}
			fmt.Printf("  %-10s %s\n", r, dimStyle.Render(label))
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{createCmd, previewCmd} {
		addProjectFlags(c)
		c.RegisterFlagCompletionFunc("client", completeClientNames)
	}

	createCmd.Flags().StringP("output", "o", "", "Write the archive to this directory instead of the configured destinations")

	previewCmd.Flags().Bool("json", false, "Print the plan as JSON")

	assetsCmd.Flags().StringP("output", "o", "", "Write the archive to this directory instead of the configured destinations")
}
