package mocks

//go:generate mockery --name Directory --srcpkg github.com/aevon-lab/xapi-connect/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name StatementSender --srcpkg github.com/aevon-lab/xapi-connect/internal/xapi --output ./xapi --outpkg xapimocks --with-expecter
//go:generate mockery --name AggregateQuerier --srcpkg github.com/aevon-lab/xapi-connect/internal/xapi --output ./xapi --outpkg xapimocks --with-expecter
