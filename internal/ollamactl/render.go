package ollamactl

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"storyctl/pkg/types"
)

func onOff(v bool, on, off string) string {
	if v {
		return pterm.Green(on)
	}
	return pterm.Red(off)
}

// renderStatus prints the human-readable status view. Machine consumers use
// --json instead.
func renderStatus(st types.ServiceStatus) {
	pterm.DefaultSection.Printf("Ollama service (%s)", st.Unit)
	pterm.Printf("  Daemon:     %s\n", onOff(st.Running, "running", "stopped"))
	pterm.Printf("  At boot:    %s\n", onOff(st.BootEnabled, "enabled", "disabled"))
	rule := st.FirewallRule
	if rule == "" {
		rule = fmt.Sprintf("no rule for port %d", st.Port)
	}
	pterm.Printf("  Firewall:   %s (%s)\n", onOff(st.FirewallOpen, "open", "closed"), rule)
	switch {
	case !st.ProbeAttempted:
		pterm.Printf("  Liveness:   %s\n", pterm.Gray("skipped (daemon not running)"))
	case st.ProbeOK:
		pterm.Printf("  Liveness:   %s\n", pterm.Green("ok"))
	default:
		pterm.Printf("  Liveness:   %s (%s)\n", pterm.Red("failed"), st.ProbeError)
	}
	pterm.Printf("  Checked:    %s\n", time.Unix(st.CheckedAtUnix, 0).Format(time.RFC3339))
}

func renderModels(installed []types.ModelInfo) {
	if len(installed) == 0 {
		pterm.Println("no models installed")
		return
	}
	data := pterm.TableData{{"NAME", "ID", "SIZE"}}
	for _, m := range installed {
		data = append(data, []string{m.Name, m.ID, m.Size})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
