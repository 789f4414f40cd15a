/*
go-svstim converts images into SystemVerilog testbench stimulus files.

Each pixel of an image, after it has been converted to RGB and resized to
the grid the hardware under test expects (96x96 by default), becomes one
assignment line

	data_in <= 24'b<blue><green><red>; #10000;

where each channel is written as an 8 bit zero padded binary field.  Blue
occupies bits [23:16], green [15:8] and red [7:0], which is the order the
downstream image pipeline reads its input bus in.

Decoding and resizing are delegated to a Loader, see the preprocess
subdirectory for the OpenCV and pure Go implementations, and the cmd
subdirectory for the command line tool.
*/
package svstim
