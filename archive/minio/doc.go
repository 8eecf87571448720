// Package minio stores dataset snapshots on MinIO or any S3-compatible
// endpoint (Ceph, SeaweedFS, Garage) through the native minio-go client,
// with no AWS SDK involved. That keeps it a good fit for on-premise and
// air-gapped deployments.
//
//	client, err := minio.New("minio.lab.internal:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4(key, secret, ""),
//	    Secure: true,
//	})
//	if err != nil {
//	    return err
//	}
//	store := minioarchive.NewStore(client, "flux-archive", "snapshots/")
//	if err := ds.Save(ctx, store, "epoch-1.dgs"); err != nil {
//	    return err
//	}
//
// Reads are ranged requests against the object; Create streams uploads
// through a pipe so large snapshots never buffer in memory.
package minio
