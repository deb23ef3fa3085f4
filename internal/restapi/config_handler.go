package restapi

import (
	"net/http"

	"github.com/AkhmadOnline/transport-catalogue/internal/buildinfo"
	"github.com/AkhmadOnline/transport-catalogue/internal/models"
)

func (api *RestAPI) configHandler(w http.ResponseWriter, r *http.Request) {
	gitProps := models.GitProperties{
		GitBranch:                buildinfo.Branch,
		GitBuildTime:             buildinfo.BuildTime,
		GitBuildVersion:          buildinfo.Version,
		GitCommitId:              buildinfo.CommitHash,
		GitCommitTime:            buildinfo.CommitTime,
		GitDirty:                 buildinfo.Dirty,
		GitCommitIdAbbrev:        buildinfo.ShortHash(),
		GitBuildHost:             buildinfo.Host,
		GitBuildUserEmail:        buildinfo.UserEmail,
		GitBuildUserName:         buildinfo.UserName,
		GitRemoteOriginUrl:       buildinfo.RemoteURL,
		GitCommitMessageShort:    buildinfo.CommitMessage,
		GitCommitIdDescribe:      buildinfo.Version,
		GitCommitIdDescribeShort: buildinfo.Version,
	}

	configEntry := models.ConfigModel{
		GitProperties: gitProps,
		Id:            "transport-catalogue",
		Name:          "Transport Catalogue",
		DataSource:    string(api.DataConfig.Format),
	}
	if api.Ready() {
		settings := api.Service.Router().Settings()
		configEntry.RoutingSettings = models.RoutingSettingsModel{
			BusVelocity: settings.BusVelocity,
			BusWaitTime: settings.BusWaitTime,
		}
	}

	api.sendResponse(w, r, models.NewEntryResponse(configEntry, models.NewEmptyReferences(), api.Clock))
}
