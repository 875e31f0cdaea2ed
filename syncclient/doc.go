// Package syncclient is the client side of the schedsync gateway.
//
// Client wraps the gateway's HTTP API: List, Upload, Download, Describe and
// Ping. Syncer mirrors a scheduler data directory against a gateway, pushing
// every allow-listed document present locally and pulling every document the
// gateway holds.
//
// # Basic Usage
//
//	client, err := syncclient.New(&syncclient.Config{Endpoint: "http://localhost:5708"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	syncer, err := syncclient.NewSyncer(client, "/home/me/.schedsync/data")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := syncer.Sync(ctx)
//
// # Merging tasks.json
//
// Pulling tasks.json does not simply overwrite the local copy. MergeTasks
// keeps the cloud document as the base but never loses a local completion
// or a task that only exists locally.
//
// # Profile Configuration
//
// Profiles live in ~/.schedsync/config.yaml:
//
//	configFile, err := syncclient.LoadConfigFile(syncclient.DefaultConfigPath())
//	profile, err := configFile.GetProfile("laptop")
//	cfg := syncclient.MergeConfig(syncclient.ConfigFromProfile(profile), syncclient.ConfigFromEnv())
//
// # Output Formatting
//
// Use formatters for human-readable or JSON output:
//
//	formatter := syncclient.NewFormatter(jsonOutput, quiet)
//	formatter.FormatReport(os.Stdout, report)
package syncclient
