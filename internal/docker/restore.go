package docker

import (
	"github.com/VERT-sh/waitress/internal/models"
	"github.com/VERT-sh/waitress/internal/repository"
	"github.com/VERT-sh/waitress/pkg/logger"
)

// Restorer runs once at process start, bringing every persisted
// ServerRecord's container back up. Each record's restore is independent:
// one record's failure is logged and never aborts the others.
type Restorer struct {
	servers     *repository.ServerRepository
	provisioner *Provisioner
}

// NewRestorer builds a Restorer.
func NewRestorer(servers *repository.ServerRepository, provisioner *Provisioner) *Restorer {
	return &Restorer{servers: servers, provisioner: provisioner}
}

// RestoreAll walks every persisted record and restores or tombstones it.
func (r *Restorer) RestoreAll() {
	records, err := r.servers.ListAll()
	if err != nil {
		logger.Error("failed to list server records for restore", err, nil)
		return
	}

	for i := range records {
		r.restoreOne(&records[i])
	}
}

func (r *Restorer) restoreOne(record *models.ServerRecord) {
	fields := map[string]interface{}{"record_id": record.ID, "container": record.ContainerName()}

	if !r.provisioner.VolumeDirExists(record) {
		logger.Warn("server volume missing, tombstoning record", fields)
		if err := r.servers.Delete(record.ID); err != nil {
			logger.Error("failed to delete tombstoned record", err, fields)
		}
		if err := bestEffortRemoveContainer(record.ContainerName()); err != nil {
			logger.Warn("best-effort container removal failed during tombstone", fields)
		}
		return
	}

	if r.provisioner.ContainerExists(record) {
		if err := r.provisioner.StartContainer(record); err != nil {
			logger.Error("failed to start existing container during restore", err, fields)
		} else {
			logger.Info("restored existing container", fields)
		}
		return
	}

	if err := r.provisioner.Restore(record); err != nil {
		logger.Error("failed to recreate container during restore", err, fields)
		return
	}
	logger.Info("recreated container during restore", fields)
}
