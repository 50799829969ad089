// Package systray renders the PitDeck tray menu. It is a thin consumer of
// the launcher manager: every click maps to one Launch, Close, or Status
// call, and all state shown is re-polled, never cached here.
package systray

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"fyne.io/systray"
	"github.com/PitDeckProject/pitdeck/pkg/apps"
	"github.com/PitDeckProject/pitdeck/pkg/config"
	"github.com/PitDeckProject/pitdeck/pkg/launcher"
	"github.com/nixinwang/dialog"
	"github.com/rs/zerolog/log"
)

const statusPollInterval = 3 * time.Second

func openCmd() string {
	switch runtime.GOOS {
	case "windows":
		return "explorer"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

type appMenu struct {
	desc   apps.Descriptor
	item   *systray.MenuItem
	launch *systray.MenuItem
	close  *systray.MenuItem
	browse *systray.MenuItem
}

func (m *appMenu) setStatus(status launcher.Status) {
	m.item.SetTitle(fmt.Sprintf("%s — %s", m.desc.Name, status))
}

// Run starts the tray loop and blocks until Quit is clicked.
func Run(cfg *config.Instance, mgr *launcher.Manager, icon []byte, logDir string) {
	systray.Run(onReady(cfg, mgr, icon, logDir), func() {})
}

func onReady(
	cfg *config.Instance,
	mgr *launcher.Manager,
	icon []byte,
	logDir string,
) func() {
	return func() {
		systray.SetIcon(icon)
		if runtime.GOOS != "darwin" {
			systray.SetTitle("PitDeck")
		}
		systray.SetTooltip("PitDeck v" + config.AppVersion)

		addMenu := func(desc apps.Descriptor) *appMenu {
			item := systray.AddMenuItem(desc.Name, "")
			return &appMenu{
				desc:   desc,
				item:   item,
				launch: item.AddSubMenuItem("Launch", "Launch "+desc.Name),
				close:  item.AddSubMenuItem("Close", "Close "+desc.Name),
				browse: item.AddSubMenuItem("Browse…", "Pick the "+desc.Name+" executable"),
			}
		}

		// companion apps first, sims below their own separator
		menus := make([]*appMenu, 0, mgr.Registry().Len())
		for _, desc := range mgr.Registry().All() {
			if desc.Game() {
				continue
			}
			menus = append(menus, addMenu(desc))
		}
		systray.AddSeparator()
		for _, desc := range mgr.Registry().All() {
			if !desc.Game() {
				continue
			}
			menus = append(menus, addMenu(desc))
		}
		for _, m := range menus {
			go appClickLoop(cfg, mgr, m)
		}

		systray.AddSeparator()
		mLaunchAll := systray.AddMenuItem("Launch All", "Launch every detected app")
		mCloseAll := systray.AddMenuItem("Close All", "Close every running app")
		systray.AddSeparator()
		mOpenConfig := systray.AddMenuItem("Edit Config", "Open the config file")
		mViewLog := systray.AddMenuItem("View Log", "View the log file")
		systray.AddSeparator()
		mVersion := systray.AddMenuItem("Version "+config.AppVersion, "")
		mVersion.Disable()
		mAbout := systray.AddMenuItem("About PitDeck", "")
		systray.AddSeparator()
		mQuit := systray.AddMenuItem("Quit", "Quit PitDeck")

		go func() {
			ticker := time.NewTicker(statusPollInterval)
			defer ticker.Stop()
			refresh(mgr, menus)

			for {
				select {
				case <-ticker.C:
					refresh(mgr, menus)
				case <-mLaunchAll.ClickedCh:
					results := mgr.LaunchAll(context.Background())
					log.Info().Msgf("launch all: %v", results)
					refresh(mgr, menus)
				case <-mCloseAll.ClickedCh:
					results := mgr.CloseAll(context.Background())
					log.Info().Msgf("close all: %v", results)
					refresh(mgr, menus)
				case <-mOpenConfig.ClickedCh:
					if err := exec.Command(openCmd(), cfg.Path()).Start(); err != nil {
						log.Error().Err(err).Msg("failed to open config file")
					}
				case <-mViewLog.ClickedCh:
					logPath := filepath.Join(logDir, config.LogFile)
					if err := exec.Command(openCmd(), logPath).Start(); err != nil {
						log.Error().Err(err).Msg("failed to open log file")
					}
				case <-mAbout.ClickedCh:
					dialog.Message(
						"PitDeck v%s\n\nOne-click launcher for iRacing and its companion apps.",
						config.AppVersion,
					).Title("About PitDeck").Info()
				case <-mQuit.ClickedCh:
					systray.Quit()
					return
				}
			}
		}()
	}
}

// appClickLoop services one app's submenu. Launch and Close block for the
// verification delay; running them here keeps the main menu loop
// responsive.
func appClickLoop(cfg *config.Instance, mgr *launcher.Manager, m *appMenu) {
	for {
		select {
		case <-m.launch.ClickedCh:
			status, path, err := mgr.Launch(context.Background(), m.desc.ID)
			if err != nil {
				log.Error().Err(err).Msgf("launch %s", m.desc.ID)
				continue
			}
			log.Info().Msgf("%s: %s (%s)", m.desc.Name, status, path)
			m.setStatus(status)
		case <-m.close.ClickedCh:
			status, err := mgr.Close(context.Background(), m.desc.ID)
			if err != nil {
				log.Error().Err(err).Msgf("close %s", m.desc.ID)
				continue
			}
			log.Info().Msgf("%s: %s", m.desc.Name, status)
			m.setStatus(status)
		case <-m.browse.ClickedCh:
			path, err := dialog.File().
				Title("Locate " + m.desc.Name).
				Filter("Executables", "exe").
				Load()
			if err != nil {
				// cancelled, or no dialog backend available
				log.Debug().Err(err).Msgf("browse cancelled for %s", m.desc.ID)
				continue
			}
			// a manual pick bypasses resolution on the next launch
			cfg.SetAppPath(m.desc.ID, path)
			log.Info().Msgf("%s: path set manually: %s", m.desc.Name, path)
		}
	}
}

func refresh(mgr *launcher.Manager, menus []*appMenu) {
	for _, m := range menus {
		status, err := mgr.Status(context.Background(), m.desc.ID)
		if err != nil {
			continue
		}
		m.setStatus(status)
	}
}
