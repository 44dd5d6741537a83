package ports

import "github.com/Jquirozp0/etl-covid-pipeline/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
