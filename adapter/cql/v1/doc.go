// Package v1 provides an adapter for gocql v1.x to work with the keyspace library.
//
// The adapter has two halves:
//
//   - [Cluster] implements keyspace.ClusterClient and opens one session per
//     physical keyspace from a shared gocql.ClusterConfig.
//   - [Session], [Query], [Batch] and [Iter] wrap gocql types to implement the
//     cql interfaces handed out by the registry.
//
// # Usage
//
//	cluster := gocql.NewCluster("127.0.0.1", "127.0.0.2")
//	cluster.Consistency = gocql.LocalQuorum
//
//	reg, err := keyspace.NewRegistry(v1.NewCluster(cluster), table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reg.Close()
//
// Or build the cluster from a configuration file:
//
//	cfg, _ := config.Load("keyspace.yaml")
//	cluster := v1.ClusterFromConfig(cfg)
//
// # Thread Safety
//
// All adapter types are safe for concurrent use, matching gocql's thread safety guarantees.
package v1
