package layout

// ReleaseTable is the scene layout of the public ScanNet++ release.
var ReleaseTable = Table{
	"scan_mesh_path":                             "scans/mesh_aligned_0.05.ply",
	"scan_mesh_mask_path":                        "scans/mesh_aligned_0.05_mask.txt",
	"scan_mesh_segs_path":                        "scans/segments.json",
	"scan_anno_json_path":                        "scans/segments_anno.json",
	"scan_sem_mesh_path":                         "scans/mesh_aligned_0.05_semantic.ply",
	"scan_pc_path":                               "scans/pc_aligned.ply",
	"scan_pc_mask_path":                          "scans/pc_aligned_mask.txt",
	"scan_transformed_poses_path":                "scans/scanner_poses.json",
	"dslr_resized_dir":                           "dslr/resized_images",
	"dslr_resized_mask_dir":                      "dslr/resized_anon_masks",
	"dslr_original_dir":                          "dslr/original_images",
	"dslr_original_mask_dir":                     "dslr/original_anon_masks",
	"dslr_colmap_dir":                            "dslr/colmap",
	"dslr_nerfstudio_transform_path":             "dslr/nerfstudio/transforms.json",
	"dslr_nerfstudio_transform_undistorted_path": "dslr/nerfstudio/transforms_undistorted.json",
	"dslr_train_test_lists_path":                 "dslr/train_test_lists.json",
	"iphone_video_path":                          "iphone/rgb.mkv",
	"iphone_video_mask_path":                     "iphone/rgb_mask.mkv",
	"iphone_depth_path":                          "iphone/depth.bin",
	"iphone_colmap_dir":                          "iphone/colmap",
	"iphone_pose_intrinsic_imu_path":             "iphone/pose_intrinsic_imu.json",
	"iphone_exif_path":                           "iphone/exif.json",
	"iphone_nerfstudio_transform_path":           "iphone/nerfstudio/transforms.json",
}
