package service

import (
	"fmt"

	"github.com/VERT-sh/waitress/internal/apierr"
	"github.com/VERT-sh/waitress/internal/docker"
	"github.com/VERT-sh/waitress/internal/models"
	"github.com/VERT-sh/waitress/internal/repository"
	"github.com/VERT-sh/waitress/internal/version"
	"github.com/VERT-sh/waitress/pkg/logger"
)

// ServerService orchestrates creation and deletion of Minecraft servers,
// tying the version resolver, the record store, and the container
// provisioner together.
type ServerService struct {
	servers     *repository.ServerRepository
	resolver    *version.Resolver
	provisioner *docker.Provisioner
	deleter     *docker.Deleter
}

func NewServerService(servers *repository.ServerRepository, resolver *version.Resolver, provisioner *docker.Provisioner, deleter *docker.Deleter) *ServerService {
	return &ServerService{servers: servers, resolver: resolver, provisioner: provisioner, deleter: deleter}
}

// Create validates name and port, resolves versionID to a download
// descriptor, inserts the record, and provisions its container. A failure
// after insertion deletes the record; a pulled image, a created named volume
// or the host volume directory is left in place.
func (s *ServerService) Create(owner, name string, port int, versionID string) (*models.ServerRecord, error) {
	if !validName(name) {
		return nil, apierr.InvalidName()
	}
	if port < models.MinPort || port > models.MaxPort {
		return nil, apierr.InvalidPort()
	}

	descriptor, err := s.resolver.Resolve(versionID)
	if err != nil {
		if err == version.ErrVersionNotFound {
			return nil, apierr.VersionNotFound(versionID)
		}
		if err == version.ErrServerInfoNotFound {
			return nil, apierr.ServerInfoNotFound()
		}
		return nil, apierr.Internal(err.Error())
	}

	image := fmt.Sprintf("openjdk:%d", descriptor.JDKMajor)

	record, err := s.servers.Insert(owner, name, port, image)
	if err != nil {
		if err == models.ErrPortAlreadyInUse {
			return nil, apierr.PortAlreadyAllocated()
		}
		return nil, apierr.Internal(err.Error())
	}

	if err := s.provisioner.Provision(record, descriptor.JarURL); err != nil {
		logger.Error("provisioning failed, rolling back record", err, map[string]interface{}{"record_id": record.ID})
		if delErr := s.servers.Delete(record.ID); delErr != nil {
			logger.Error("rollback delete failed", delErr, map[string]interface{}{"record_id": record.ID})
		}
		return nil, apierr.ProvisionFailed(err.Error())
	}

	return record, nil
}

func validName(name string) bool {
	runes := []rune(name)
	return len(runes) >= 1 && len(runes) <= models.MaxNameRunes
}

// Delete removes record's store entry, container, and volume.
func (s *ServerService) Delete(record *models.ServerRecord) error {
	if err := s.deleter.Delete(record); err != nil {
		return apierr.Internal(err.Error())
	}
	return nil
}
